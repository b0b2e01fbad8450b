package feedback

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"prism/infrastructure"
	"prism/internal/email"
)

type SubmitRequest struct {
	FeedbackType string `json:"feedback_type"`
	Content      string `json:"content"`

	OrgName        string   `json:"org_name"`
	OrgDescription string   `json:"org_description"`
	OrgType        string   `json:"org_type"`
	OrgAddress     string   `json:"org_address"`
	OrgPhone       string   `json:"org_phone"`
	OrgWebsite     string   `json:"org_website"`
	OrgHours       string   `json:"org_hours"`
	OrgLatitude    *float64 `json:"org_latitude"`
	OrgLongitude   *float64 `json:"org_longitude"`
	OrgIsSafeSpace bool     `json:"org_is_safe_space"`
}

type ApplyRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	Experience   string `json:"experience"`
	Motivation   string `json:"motivation"`
	Availability string `json:"availability"`
	References   string `json:"references"`
}

type Service struct {
	repo     Repository
	notifier email.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier email.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// Submit stores a feedback entry and notifies the admin by email. Delivery
// failures are logged, not surfaced; the submission itself always succeeds.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Feedback, error) {
	display, ok := FeedbackTypes[req.FeedbackType]
	if !ok {
		return nil, fmt.Errorf("%w: invalid feedback_type", infrastructure.ErrInvalidInput)
	}
	if req.FeedbackType == "org_submission" {
		if req.OrgName == "" {
			return nil, fmt.Errorf("%w: org_name required for organization submissions", infrastructure.ErrInvalidInput)
		}
	} else if req.Content == "" {
		return nil, fmt.Errorf("%w: content required", infrastructure.ErrInvalidInput)
	}

	fb := &Feedback{
		ID:             newToken(),
		FeedbackType:   req.FeedbackType,
		Content:        req.Content,
		OrgName:        req.OrgName,
		OrgDescription: req.OrgDescription,
		OrgType:        req.OrgType,
		OrgAddress:     req.OrgAddress,
		OrgPhone:       req.OrgPhone,
		OrgWebsite:     req.OrgWebsite,
		OrgHours:       req.OrgHours,
		OrgLatitude:    req.OrgLatitude,
		OrgLongitude:   req.OrgLongitude,
		OrgIsSafeSpace: req.OrgIsSafeSpace,
		Status:         "pending",
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	subject, body := s.feedbackMail(fb, display)
	if err := s.notifier.NotifyAdmin(subject, body); err == nil {
		if err := s.repo.MarkEmailSent(ctx, fb.ID); err != nil {
			log.Error().Err(err).Str("feedback_id", fb.ID).Msg("failed to record email_sent")
		}
	}
	return fb, nil
}

// Bridge returns the latest submissions with their review status.
func (s *Service) Bridge(ctx context.Context) ([]Feedback, error) {
	return s.repo.Recent(ctx, bridgeLimit)
}

// Apply records an admin application and notifies the admin.
func (s *Service) Apply(ctx context.Context, req *ApplyRequest) (*AdminApplication, error) {
	for field, v := range map[string]string{
		"name":         req.Name,
		"email":        req.Email,
		"location":     req.Location,
		"experience":   req.Experience,
		"motivation":   req.Motivation,
		"availability": req.Availability,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: %s required", infrastructure.ErrInvalidInput, field)
		}
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", infrastructure.ErrInvalidInput)
	}

	app := &AdminApplication{
		Name:         req.Name,
		Email:        req.Email,
		Location:     req.Location,
		Experience:   req.Experience,
		Motivation:   req.Motivation,
		Availability: req.Availability,
		References:   req.References,
		Status:       "pending",
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	subject, body := s.applicationMail(app)
	if err := s.notifier.NotifyAdmin(subject, body); err == nil {
		if err := s.repo.MarkApplicationEmailSent(ctx, app.ID); err != nil {
			log.Error().Err(err).Uint("application_id", app.ID).Msg("failed to record email_sent")
		}
	}
	return app, nil
}

func (s *Service) feedbackMail(fb *Feedback, display string) (string, string) {
	when := fb.CreatedAt.Format("2006-01-02 15:04:05")
	if fb.FeedbackType == "org_submission" {
		safe := "No"
		if fb.OrgIsSafeSpace {
			safe = "Yes"
		}
		subject := fmt.Sprintf("New Organization Submission - %s", fb.OrgName)
		body := fmt.Sprintf(
			"New Organization Submission\n\n"+
				"Organization Name: %s\nType: %s\nDescription: %s\n\n"+
				"Address: %s\nPhone: %s\nWebsite: %s\nHours: %s\n\n"+
				"Safe Space: %s\n\nSubmitted: %s\nFeedback ID: %s\n",
			fb.OrgName, fb.OrgType, fb.OrgDescription,
			fb.OrgAddress, fb.OrgPhone, fb.OrgWebsite, fb.OrgHours,
			safe, when, fb.ID)
		return subject, body
	}

	subject := fmt.Sprintf("New %s", display)
	body := fmt.Sprintf(
		"New %s Submitted\n\nContent:\n%s\n\nSubmitted: %s\nFeedback ID: %s\n",
		display, fb.Content, when, fb.ID)
	return subject, body
}

func (s *Service) applicationMail(app *AdminApplication) (string, string) {
	references := app.References
	if references == "" {
		references = "None provided"
	}
	subject := fmt.Sprintf("New Admin Application - %s", app.Name)
	body := fmt.Sprintf(
		"New Admin Application Received\n\n"+
			"Applicant: %s\nEmail: %s\nLocation: %s\n\n"+
			"EXPERIENCE:\n%s\n\nMOTIVATION:\n%s\n\nAVAILABILITY:\n%s\n\n"+
			"REFERENCES:\n%s\n\nApplication ID: %d\nSubmitted: %s\n",
		app.Name, app.Email, app.Location,
		app.Experience, app.Motivation, app.Availability,
		references, app.ID, app.CreatedAt.Format("2006-01-02 15:04:05"))
	return subject, body
}

func newToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
