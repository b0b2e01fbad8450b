package tribes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"prism/infrastructure"
)

type PostView struct {
	Post
	ReactionCounts map[string]int `json:"reaction_counts"`
	ReplyCount     int            `json:"reply_count"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// anonAuthorHash produces a throwaway per-post identity from the request
// time and remote address. It cannot be linked to a registered user.
func (s *Service) anonAuthorHash(remoteAddr string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s", s.now().UnixNano(), remoteAddr)))
	return "anon_" + hex.EncodeToString(sum[:])[:16]
}

func (s *Service) CreatePost(ctx context.Context, tribeID, content, remoteAddr string) (*PostView, error) {
	if tribeID == "" {
		return nil, fmt.Errorf("%w: tribe_id required", infrastructure.ErrInvalidInput)
	}
	if content == "" || len(content) > maxContentLen {
		return nil, fmt.Errorf("%w: content must be 1-%d characters", infrastructure.ErrInvalidInput, maxContentLen)
	}

	post := &Post{
		TribeID:    tribeID,
		AuthorHash: s.anonAuthorHash(remoteAddr),
		Content:    content,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return &PostView{Post: *post, ReactionCounts: emptyCounts()}, nil
}

// ListPosts returns a tribe's visible posts with reaction tallies.
func (s *Service) ListPosts(ctx context.Context, tribeID string) ([]PostView, error) {
	posts, err := s.repo.ListPosts(ctx, tribeID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	counts, err := s.repo.CountReactions(ctx, ids)
	if err != nil {
		return nil, err
	}
	byPost := make(map[uint]map[string]int, len(posts))
	for _, c := range counts {
		if byPost[c.PostID] == nil {
			byPost[c.PostID] = emptyCounts()
		}
		byPost[c.PostID][c.ReactionType] = c.Count
	}

	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		cc := byPost[p.ID]
		if cc == nil {
			cc = emptyCounts()
		}
		out = append(out, PostView{Post: p, ReactionCounts: cc})
	}
	return out, nil
}

// DeletePost soft-deletes a post, recording who removed it and why.
func (s *Service) DeletePost(ctx context.Context, id uint, deletedBy, reason string) error {
	if deletedBy == "" {
		deletedBy = "admin"
	}
	if reason == "" {
		reason = "Violated community guidelines"
	}
	if _, err := s.repo.GetPost(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDeletePost(ctx, id, deletedBy, reason, s.now().UTC())
}

// React toggles a reaction on a visible post and reports whether it was
// added or removed.
func (s *Service) React(ctx context.Context, postID uint, userHash, reactionType string) (bool, error) {
	if !ReactionTypes[reactionType] {
		return false, fmt.Errorf("%w: invalid reaction type", infrastructure.ErrInvalidInput)
	}
	if _, err := s.repo.GetVisiblePost(ctx, postID); err != nil {
		return false, err
	}
	return s.repo.ToggleReaction(ctx, postID, userHash, reactionType)
}

func emptyCounts() map[string]int {
	return map[string]int{"heart": 0, "support": 0, "celebrate": 0}
}
