package keys

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"prism/config"
	"prism/infrastructure"
)

type RegisterRequest struct {
	IdentityKey    string               `json:"identity_key"`
	RegistrationID int                  `json:"registration_id"`
	SignedPreKey   SignedPreKeyUpload   `json:"signed_pre_key"`
	PreKeys        []PreKeyUpload       `json:"pre_keys"`
}

type SignedPreKeyUpload struct {
	KeyID     int    `json:"key_id"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type PreKeyUpload struct {
	KeyID     int    `json:"key_id"`
	PublicKey string `json:"public_key"`
}

type UploadRequest struct {
	Signature string         `json:"signature"`
	Timestamp int64          `json:"timestamp"`
	PreKeys   []PreKeyUpload `json:"pre_keys"`
}

type RotateRequest struct {
	Signature    string             `json:"signature"`
	Timestamp    int64              `json:"timestamp"`
	SignedPreKey SignedPreKeyUpload `json:"signed_pre_key"`
}

type Bundle struct {
	RegistrationID   int                 `json:"registration_id"`
	IdentityKey      string              `json:"identity_key"`
	SignedPreKey     SignedPreKeyUpload  `json:"signed_pre_key"`
	PreKey           *PreKeyUpload       `json:"pre_key,omitempty"`
	PreKeysAvailable int64               `json:"pre_keys_available"`
}

type Service struct {
	repo Repository

	// now is swapped in tests to pin the freshness window.
	now    func() time.Time
	window time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	window := cfg.UploadWindow
	if window <= 0 {
		window = 300 * time.Second
	}
	return &Service{
		repo:   repo,
		now:    time.Now,
		window: window,
	}
}

// UserHashFromIdentityKey derives the stable user identifier: the hex
// SHA-256 of the identity key exactly as submitted. Same key, same hash.
func UserHashFromIdentityKey(identityKey string) string {
	sum := sha256.Sum256([]byte(identityKey))
	return hex.EncodeToString(sum[:])
}

// Register creates the user with its initial key bundle. Create-once:
// re-registering the same identity key is a conflict, not a merge.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (string, error) {
	if err := validateRegister(req); err != nil {
		return "", err
	}

	userHash := UserHashFromIdentityKey(req.IdentityKey)

	user := &User{
		UserHash:       userHash,
		RegistrationID: req.RegistrationID,
		IdentityKey:    req.IdentityKey,
		LastSeen:       s.now().UTC(),
	}
	signed := &SignedPreKey{
		KeyID:     req.SignedPreKey.KeyID,
		PublicKey: req.SignedPreKey.PublicKey,
		Signature: req.SignedPreKey.Signature,
	}
	preKeys := make([]PreKey, 0, len(req.PreKeys))
	for _, pk := range req.PreKeys {
		preKeys = append(preKeys, PreKey{KeyID: pk.KeyID, PublicKey: pk.PublicKey})
	}

	if err := s.repo.CreateUser(ctx, user, signed, preKeys); err != nil {
		return "", err
	}
	return userHash, nil
}

// IssueBundle assembles the key bundle for starting a session with
// userHash. If an unused pre-key exists, the lowest key_id is consumed as
// part of this call.
func (s *Service) IssueBundle(ctx context.Context, userHash string) (*Bundle, error) {
	user, err := s.repo.GetUser(ctx, userHash)
	if err != nil {
		return nil, err
	}

	signed, err := s.repo.ActiveSignedPreKey(ctx, userHash)
	if err != nil {
		return nil, err
	}

	preKey, err := s.repo.ClaimPreKey(ctx, userHash)
	if err != nil {
		return nil, err
	}

	available, err := s.repo.UnusedPreKeyCount(ctx, userHash)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		RegistrationID: user.RegistrationID,
		IdentityKey:    user.IdentityKey,
		SignedPreKey: SignedPreKeyUpload{
			KeyID:     signed.KeyID,
			PublicKey: signed.PublicKey,
			Signature: signed.Signature,
		},
		PreKeysAvailable: available,
	}
	if preKey != nil {
		bundle.PreKey = &PreKeyUpload{KeyID: preKey.KeyID, PublicKey: preKey.PublicKey}
		if available <= 5 {
			log.Warn().Str("user", userHash[:8]).Int64("remaining", available).
				Msg("pre-key pool running low")
		}
	}
	return bundle, nil
}

// UploadPreKeys replenishes the pool. The request must be fresh and signed
// with the identity key; an existing key_id has its material replaced and
// its used flag reset.
func (s *Service) UploadPreKeys(ctx context.Context, userHash string, req *UploadRequest) (int, int64, error) {
	if req.Signature == "" {
		return 0, 0, fmt.Errorf("%w: signature required for key upload", infrastructure.ErrInvalidInput)
	}
	if err := s.checkFreshness(req.Timestamp); err != nil {
		return 0, 0, err
	}
	if err := validatePreKeyBatch(req.PreKeys); err != nil {
		return 0, 0, err
	}

	user, err := s.repo.GetUser(ctx, userHash)
	if err != nil {
		return 0, 0, err
	}

	batch := make([]PreKey, 0, len(req.PreKeys))
	for _, pk := range req.PreKeys {
		batch = append(batch, PreKey{KeyID: pk.KeyID, PublicKey: pk.PublicKey})
	}

	if err := verifySignature(user.IdentityKey, uploadMessage(req.Timestamp, batch), req.Signature); err != nil {
		return 0, 0, err
	}

	count, err := s.repo.UpsertPreKeys(ctx, userHash, batch)
	if err != nil {
		return 0, 0, err
	}

	available, err := s.repo.UnusedPreKeyCount(ctx, userHash)
	if err != nil {
		return 0, 0, err
	}

	if err := s.repo.TouchLastSeen(ctx, userHash); err != nil {
		log.Warn().Err(err).Msg("failed to update last_seen")
	}
	return count, available, nil
}

// RotateSignedPreKey swaps in a new signed pre-key. Deactivate-then-insert
// happens in one repository transaction so the bundle issuer never sees
// zero or two active keys.
func (s *Service) RotateSignedPreKey(ctx context.Context, userHash string, req *RotateRequest) error {
	if req.Signature == "" {
		return fmt.Errorf("%w: signature required for key rotation", infrastructure.ErrInvalidInput)
	}
	if err := s.checkFreshness(req.Timestamp); err != nil {
		return err
	}
	if err := validateSignedPreKey(&req.SignedPreKey); err != nil {
		return err
	}

	user, err := s.repo.GetUser(ctx, userHash)
	if err != nil {
		return err
	}

	signed := &SignedPreKey{
		KeyID:     req.SignedPreKey.KeyID,
		PublicKey: req.SignedPreKey.PublicKey,
		Signature: req.SignedPreKey.Signature,
	}
	if err := verifySignature(user.IdentityKey, rotationMessage(req.Timestamp, signed), req.Signature); err != nil {
		return err
	}

	if err := s.repo.RotateSignedPreKey(ctx, userHash, signed); err != nil {
		return err
	}
	if err := s.repo.TouchLastSeen(ctx, userHash); err != nil {
		log.Warn().Err(err).Msg("failed to update last_seen")
	}
	return nil
}

func (s *Service) checkFreshness(timestamp int64) error {
	skew := s.now().Unix() - timestamp
	if skew < 0 {
		skew = -skew
	}
	if time.Duration(skew)*time.Second > s.window {
		return infrastructure.ErrRequestExpired
	}
	return nil
}

func validateRegister(req *RegisterRequest) error {
	if req.IdentityKey == "" {
		return fmt.Errorf("%w: identity_key is required", infrastructure.ErrInvalidInput)
	}
	if _, err := base64.StdEncoding.DecodeString(req.IdentityKey); err != nil {
		return fmt.Errorf("%w: identity_key must be base64", infrastructure.ErrInvalidInput)
	}
	if req.RegistrationID < 1 {
		return fmt.Errorf("%w: registration_id must be positive", infrastructure.ErrInvalidInput)
	}
	if err := validateSignedPreKey(&req.SignedPreKey); err != nil {
		return err
	}
	return validatePreKeyBatch(req.PreKeys)
}

func validateSignedPreKey(signed *SignedPreKeyUpload) error {
	if signed.KeyID < 1 {
		return fmt.Errorf("%w: signed_pre_key.key_id must be positive", infrastructure.ErrInvalidInput)
	}
	if signed.PublicKey == "" || signed.Signature == "" {
		return fmt.Errorf("%w: signed_pre_key requires public_key and signature", infrastructure.ErrInvalidInput)
	}
	return nil
}

func validatePreKeyBatch(preKeys []PreKeyUpload) error {
	seen := make(map[int]struct{}, len(preKeys))
	for _, pk := range preKeys {
		if pk.KeyID < 1 {
			return fmt.Errorf("%w: pre_key key_id must be positive", infrastructure.ErrInvalidInput)
		}
		if pk.PublicKey == "" {
			return fmt.Errorf("%w: pre_key public_key is required", infrastructure.ErrInvalidInput)
		}
		if _, dup := seen[pk.KeyID]; dup {
			return fmt.Errorf("%w: duplicate pre_key key_id %d", infrastructure.ErrInvalidInput, pk.KeyID)
		}
		seen[pk.KeyID] = struct{}{}
	}
	return nil
}
