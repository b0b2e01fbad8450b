package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"prism/infrastructure"
)

type SendRequest struct {
	RecipientHash string `json:"recipient_hash"`
	Ciphertext    string `json:"ciphertext"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Send(ctx context.Context, senderHash string, req *SendRequest) (*EncryptedMessage, error) {
	if req.RecipientHash == "" || len(req.RecipientHash) > 64 {
		return nil, fmt.Errorf("%w: recipient_hash is required", infrastructure.ErrInvalidInput)
	}
	if req.Ciphertext == "" {
		return nil, fmt.Errorf("%w: ciphertext is required", infrastructure.ErrInvalidInput)
	}

	now := s.now().UTC()
	msg := &EncryptedMessage{
		ID:            uuid.NewString(),
		SenderHash:    senderHash,
		RecipientHash: req.RecipientHash,
		Ciphertext:    req.Ciphertext,
		CreatedAt:     now,
		ExpiresAt:     now.Add(retention),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) Pending(ctx context.Context, recipientHash string) ([]EncryptedMessage, error) {
	return s.repo.PendingFor(ctx, recipientHash)
}

// Ack marks a message delivered. Only the recipient can acknowledge.
func (s *Service) Ack(ctx context.Context, id, recipientHash string) error {
	msg, err := s.repo.GetForRecipient(ctx, id, recipientHash)
	if err != nil {
		return err
	}
	return s.repo.MarkDelivered(ctx, msg.ID, s.now().UTC())
}

// Delete removes a message. Only the recipient can delete.
func (s *Service) Delete(ctx context.Context, id, recipientHash string) error {
	msg, err := s.repo.GetForRecipient(ctx, id, recipientHash)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, msg.ID)
}
