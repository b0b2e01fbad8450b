package listings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"prism/infrastructure"
	"prism/internal/geo"
)

type CreateRequest struct {
	ListingType   string  `json:"listing_type"`
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ContactCipher string  `json:"contact_cipher"`
}

// Nearby pairs a listing with its distance from the query point.
type Nearby struct {
	Listing
	Distance *float64 `json:"distance,omitempty"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, creatorHash string, req *CreateRequest) (*Listing, error) {
	if !ListingTypes[req.ListingType] {
		return nil, fmt.Errorf("%w: invalid listing_type", infrastructure.ErrInvalidInput)
	}
	if !Categories[req.Category] {
		return nil, fmt.Errorf("%w: invalid category", infrastructure.ErrInvalidInput)
	}
	if req.Title == "" || len(req.Title) > 100 {
		return nil, fmt.Errorf("%w: title must be 1-100 characters", infrastructure.ErrInvalidInput)
	}
	if req.Description == "" || len(req.Description) > 500 {
		return nil, fmt.Errorf("%w: description must be 1-500 characters", infrastructure.ErrInvalidInput)
	}
	if err := geo.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	listing := &Listing{
		ID:            uuid.NewString(),
		CreatorHash:   creatorHash,
		ListingType:   req.ListingType,
		Category:      req.Category,
		Title:         req.Title,
		Description:   req.Description,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ContactCipher: req.ContactCipher,
		CreatedAt:     now,
		ExpiresAt:     now.Add(lifetime),
	}
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Browse returns open listings. Without a location it falls back to the
// most recent listings; with one it filters to 20km and sorts by distance.
func (s *Service) Browse(ctx context.Context, filter Filter, lat, lng *float64) ([]Nearby, error) {
	if lat == nil || lng == nil {
		recent, err := s.repo.Recent(ctx, filter, recentLimit)
		if err != nil {
			return nil, err
		}
		out := make([]Nearby, 0, len(recent))
		for _, l := range recent {
			out = append(out, Nearby{Listing: l})
		}
		return out, nil
	}

	open, err := s.repo.Open(ctx, filter)
	if err != nil {
		return nil, err
	}
	within, distances := geo.FilterByRadius(open, *lat, *lng, searchRadiusMeters)
	out := make([]Nearby, 0, len(within))
	for i, l := range within {
		d := distances[i]
		out = append(out, Nearby{Listing: l, Distance: &d})
	}
	return out, nil
}

// Fulfill closes a listing. Only its creator can do that.
func (s *Service) Fulfill(ctx context.Context, id, creatorHash string) error {
	listing, err := s.repo.GetForCreator(ctx, id, creatorHash)
	if err != nil {
		return err
	}
	return s.repo.MarkFulfilled(ctx, listing.ID, s.now().UTC())
}
