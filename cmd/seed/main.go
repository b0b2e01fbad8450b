// Command seed loads the bundled organization directory into the database.
// Safe to re-run; entries are upserted by ID.
package main

import (
	"context"
	"os"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"prism/config"
	"prism/internal/database"
	"prism/internal/orgs"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.Migrate(&orgs.Organization{}); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	repo := orgs.NewRepository(db)
	ctx := context.Background()

	count := 0
	for i := range directory {
		org := directory[i]
		org.IsActive = true
		if err := repo.Upsert(ctx, &org); err != nil {
			log.Error().Err(err).Str("org", org.Name).Msg("upsert failed")
			continue
		}
		count++
	}
	log.Info().Int("seeded", count).Int("total", len(directory)).Msg("directory seeded")
}

var directory = []orgs.Organization{
	{
		ID:          "org-hrc",
		Name:        "Human Rights Campaign",
		Description: "Largest LGBTQ+ civil rights organization",
		OrgType:     "nonprofit",
		Address:     "1640 Rhode Island Ave NW, Washington, DC 20036",
		Phone:       "(202) 628-4160",
		Website:     "https://www.hrc.org",
		Latitude:    38.9097,
		Longitude:   -77.0379,
		Tags:        pq.StringArray{"advocacy", "civil rights", "education"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-glaad",
		Name:        "GLAAD",
		Description: "LGBTQ+ media advocacy organization",
		OrgType:     "nonprofit",
		Address:     "104 W 29th St, New York, NY 10001",
		Phone:       "(212) 629-3322",
		Website:     "https://www.glaad.org",
		Latitude:    40.7472,
		Longitude:   -73.9936,
		Tags:        pq.StringArray{"media", "advocacy", "education"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-center-nyc",
		Name:        "The Center NYC",
		Description: "New York City's LGBTQ+ community center",
		OrgType:     "community",
		Address:     "208 W 13th St, New York, NY 10011",
		Phone:       "(212) 620-7310",
		Website:     "https://gaycenter.org",
		Latitude:    40.7379,
		Longitude:   -74.0000,
		Tags:        pq.StringArray{"community center", "support groups", "health services"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-la-lgbt-center",
		Name:        "Los Angeles LGBT Center",
		Description: "World's largest LGBTQ+ organization",
		OrgType:     "community",
		Address:     "1625 N Schrader Blvd, Los Angeles, CA 90028",
		Phone:       "(323) 993-7400",
		Website:     "https://lalgbtcenter.org",
		Latitude:    34.0981,
		Longitude:   -118.3282,
		Tags:        pq.StringArray{"community center", "healthcare", "housing", "youth services"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-sf-lgbt-center",
		Name:        "San Francisco LGBT Center",
		Description: "Community hub for LGBTQ+ San Francisco",
		OrgType:     "community",
		Address:     "1800 Market St, San Francisco, CA 94102",
		Phone:       "(415) 865-5555",
		Website:     "https://www.sfcenter.org",
		Latitude:    37.7705,
		Longitude:   -122.4210,
		Tags:        pq.StringArray{"community center", "support", "cultural events"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-center-on-halsted",
		Name:        "Chicago Center on Halsted",
		Description: "Midwest's premier LGBTQ+ community center",
		OrgType:     "community",
		Address:     "3656 N Halsted St, Chicago, IL 60613",
		Phone:       "(773) 472-6469",
		Website:     "https://www.centeronhalsted.org",
		Latitude:    41.9462,
		Longitude:   -87.6493,
		Tags:        pq.StringArray{"community center", "senior services", "youth programs"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-montrose-center",
		Name:        "Montrose Center",
		Description: "Houston's LGBTQ+ community center",
		OrgType:     "community",
		Address:     "401 Branard St, Houston, TX 77006",
		Phone:       "(713) 529-0037",
		Website:     "https://www.montrosecenter.org",
		Latitude:    29.7465,
		Longitude:   -95.3892,
		Tags:        pq.StringArray{"community center", "counseling", "support groups"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-trans-lifeline",
		Name:        "Trans Lifeline",
		Description: "Peer support hotline run by and for trans people",
		OrgType:     "nonprofit",
		Address:     "P.O. Box 1345, Watsonville, CA 95077",
		Phone:       "(877) 565-8860",
		Website:     "https://translifeline.org",
		Latitude:    36.9101,
		Longitude:   -121.7570,
		Tags:        pq.StringArray{"crisis support", "transgender", "hotline"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-ncte",
		Name:        "National Center for Transgender Equality",
		Description: "Policy advocacy for transgender rights",
		OrgType:     "nonprofit",
		Address:     "1032 15th St NW, Suite 199, Washington, DC 20005",
		Phone:       "(202) 642-4542",
		Website:     "https://transequality.org",
		Latitude:    38.9032,
		Longitude:   -77.0340,
		Tags:        pq.StringArray{"advocacy", "policy", "transgender", "legal"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-trevor-project",
		Name:        "The Trevor Project",
		Description: "Crisis intervention for LGBTQ+ youth",
		OrgType:     "nonprofit",
		Address:     "660 S Figueroa St, Suite 100, Los Angeles, CA 90017",
		Phone:       "(866) 488-7386",
		Website:     "https://www.thetrevorproject.org",
		Latitude:    34.0484,
		Longitude:   -118.2596,
		Tags:        pq.StringArray{"crisis support", "youth", "suicide prevention", "hotline"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-glsen",
		Name:        "GLSEN",
		Description: "Education network for LGBTQ+ inclusive schools",
		OrgType:     "education",
		Address:     "110 William St, 30th Floor, New York, NY 10038",
		Phone:       "(212) 727-0135",
		Website:     "https://www.glsen.org",
		Latitude:    40.7095,
		Longitude:   -74.0071,
		Tags:        pq.StringArray{"education", "youth", "schools", "advocacy"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
	{
		ID:          "org-pflag-national",
		Name:        "PFLAG National",
		Description: "Nation's first and largest organization for LGBTQ+ people and families",
		OrgType:     "nonprofit",
		Address:     "1828 L St NW, Suite 660, Washington, DC 20036",
		Phone:       "(202) 467-8180",
		Website:     "https://pflag.org",
		Latitude:    38.9039,
		Longitude:   -77.0422,
		Tags:        pq.StringArray{"family support", "advocacy", "education"},
		IsSafeSpace: true,
		IsVerified:  true,
	},
}
