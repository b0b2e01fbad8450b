package tribes

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/infrastructure"
)

type fakeRepository struct {
	posts     map[uint]*Post
	reactions []*Reaction
	nextID    uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: make(map[uint]*Post), nextID: 1}
}

func (f *fakeRepository) CreatePost(_ context.Context, post *Post) error {
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now().UTC()
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakeRepository) ListPosts(_ context.Context, tribeID string) ([]Post, error) {
	var out []Post
	for _, p := range f.posts {
		if p.TribeID == tribeID && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepository) GetPost(_ context.Context, id uint) (*Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, infrastructure.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) GetVisiblePost(ctx context.Context, id uint) (*Post, error) {
	p, err := f.GetPost(ctx, id)
	if err != nil || p.IsDeleted {
		return nil, infrastructure.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepository) SoftDeletePost(_ context.Context, id uint, deletedBy, reason string, at time.Time) error {
	p, ok := f.posts[id]
	if !ok {
		return infrastructure.ErrNotFound
	}
	p.IsDeleted = true
	p.DeletedBy = deletedBy
	p.DeletedReason = reason
	p.DeletedAt = &at
	return nil
}

func (f *fakeRepository) ToggleReaction(_ context.Context, postID uint, userHash, reactionType string) (bool, error) {
	for i, r := range f.reactions {
		if r.PostID == postID && r.UserHash == userHash && r.ReactionType == reactionType {
			f.reactions = append(f.reactions[:i], f.reactions[i+1:]...)
			return false, nil
		}
	}
	f.reactions = append(f.reactions, &Reaction{PostID: postID, UserHash: userHash, ReactionType: reactionType})
	return true, nil
}

func (f *fakeRepository) CountReactions(_ context.Context, postIDs []uint) ([]ReactionCount, error) {
	wanted := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}
	tally := make(map[uint]map[string]int)
	for _, r := range f.reactions {
		if !wanted[r.PostID] {
			continue
		}
		if tally[r.PostID] == nil {
			tally[r.PostID] = make(map[string]int)
		}
		tally[r.PostID][r.ReactionType]++
	}
	var out []ReactionCount
	for postID, types := range tally {
		for rt, n := range types {
			out = append(out, ReactionCount{PostID: postID, ReactionType: rt, Count: n})
		}
	}
	return out, nil
}

func TestCreatePostAnonymizesAuthor(t *testing.T) {
	svc := NewService(newFakeRepository())

	post, err := svc.CreatePost(context.Background(), "trans_fem", "hello", "10.0.0.1:4242")
	require.NoError(t, err)
	assert.Equal(t, "trans_fem", post.TribeID)
	assert.Regexp(t, "^anon_[0-9a-f]{16}$", post.AuthorHash)
	assert.Equal(t, map[string]int{"heart": 0, "support": 0, "celebrate": 0}, post.ReactionCounts)

	// Same address, different moment, different pseudonym.
	later, err := svc.CreatePost(context.Background(), "trans_fem", "again", "10.0.0.1:4242")
	require.NoError(t, err)
	assert.NotEqual(t, post.AuthorHash, later.AuthorHash)
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.CreatePost(context.Background(), "bipoc_queer", "", "addr")
	assert.True(t, errors.Is(err, infrastructure.ErrInvalidInput))

	long := make([]byte, maxContentLen+1)
	_, err = svc.CreatePost(context.Background(), "bipoc_queer", string(long), "addr")
	assert.True(t, errors.Is(err, infrastructure.ErrInvalidInput))
}

func TestListPostsIncludesReactionCounts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	post, err := svc.CreatePost(context.Background(), "rural_lgbtq", "first", "a")
	require.NoError(t, err)

	_, err = svc.React(context.Background(), post.ID, "u1", "heart")
	require.NoError(t, err)
	_, err = svc.React(context.Background(), post.ID, "u2", "heart")
	require.NoError(t, err)
	_, err = svc.React(context.Background(), post.ID, "u1", "support")
	require.NoError(t, err)

	posts, err := svc.ListPosts(context.Background(), "rural_lgbtq")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].ReactionCounts["heart"])
	assert.Equal(t, 1, posts[0].ReactionCounts["support"])
	assert.Equal(t, 0, posts[0].ReactionCounts["celebrate"])
}

func TestReactToggle(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	post, err := svc.CreatePost(context.Background(), "tribe", "content", "a")
	require.NoError(t, err)

	added, err := svc.React(context.Background(), post.ID, "u1", "heart")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.React(context.Background(), post.ID, "u1", "heart")
	require.NoError(t, err)
	assert.False(t, added, "second identical reaction removes the first")

	_, err = svc.React(context.Background(), post.ID, "u1", "wave")
	assert.True(t, errors.Is(err, infrastructure.ErrInvalidInput))

	_, err = svc.React(context.Background(), 999, "u1", "heart")
	assert.True(t, errors.Is(err, infrastructure.ErrNotFound))
}

func TestDeletePostIsSoftAndHidesFromList(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	post, err := svc.CreatePost(context.Background(), "tribe", "content", "a")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), post.ID, "mod@example.org", "spam"))

	stored := repo.posts[post.ID]
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, "mod@example.org", stored.DeletedBy)
	assert.Equal(t, "spam", stored.DeletedReason)
	assert.NotNil(t, stored.DeletedAt)

	posts, err := svc.ListPosts(context.Background(), "tribe")
	require.NoError(t, err)
	assert.Empty(t, posts)

	// Reacting to a deleted post fails.
	_, err = svc.React(context.Background(), post.ID, "u1", "heart")
	assert.True(t, errors.Is(err, infrastructure.ErrNotFound))
}

func TestDeletePostDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	post, err := svc.CreatePost(context.Background(), "tribe", "content", "a")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), post.ID, "", ""))
	stored := repo.posts[post.ID]
	assert.Equal(t, "admin", stored.DeletedBy)
	assert.Equal(t, "Violated community guidelines", stored.DeletedReason)
}
