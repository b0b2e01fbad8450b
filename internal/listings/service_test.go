package listings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/infrastructure"
)

type fakeRepository struct {
	listings map[string]*Listing
	now      func() time.Time
}

func newFakeRepository(now func() time.Time) *fakeRepository {
	return &fakeRepository{listings: make(map[string]*Listing), now: now}
}

func (f *fakeRepository) Create(_ context.Context, listing *Listing) error {
	stored := *listing
	f.listings[listing.ID] = &stored
	return nil
}

func (f *fakeRepository) matches(l *Listing, filter Filter) bool {
	if l.IsFulfilled || !l.ExpiresAt.After(f.now()) {
		return false
	}
	if filter.ListingType != "" && l.ListingType != filter.ListingType {
		return false
	}
	if filter.Category != "" && l.Category != filter.Category {
		return false
	}
	return true
}

func (f *fakeRepository) Open(_ context.Context, filter Filter) ([]Listing, error) {
	var out []Listing
	for _, l := range f.listings {
		if f.matches(l, filter) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepository) Recent(ctx context.Context, filter Filter, n int) ([]Listing, error) {
	out, err := f.Open(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (f *fakeRepository) GetForCreator(_ context.Context, id, creatorHash string) (*Listing, error) {
	l, ok := f.listings[id]
	if !ok || l.CreatorHash != creatorHash {
		return nil, infrastructure.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeRepository) MarkFulfilled(_ context.Context, id string, at time.Time) error {
	if l, ok := f.listings[id]; ok {
		l.IsFulfilled = true
		l.FulfilledAt = &at
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository) {
	t.Helper()
	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return base }
	repo := newFakeRepository(now)
	svc := NewService(repo)
	svc.now = now
	return svc, repo
}

func validRequest() *CreateRequest {
	return &CreateRequest{
		ListingType: "offer",
		Category:    "food",
		Title:       "Groceries to share",
		Description: "Extra produce, pickup downtown",
		Latitude:    40.0,
		Longitude:   -74.0,
	}
}

func TestCreateListing(t *testing.T) {
	svc, repo := newTestService(t)

	listing, err := svc.Create(context.Background(), "creator-1", validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, "creator-1", listing.CreatorHash)
	assert.Equal(t, listing.CreatedAt.Add(lifetime), listing.ExpiresAt)
	assert.Contains(t, repo.listings, listing.ID)
}

func TestCreateListingValidation(t *testing.T) {
	svc, _ := newTestService(t)

	mutate := map[string]func(*CreateRequest){
		"bad type":         func(r *CreateRequest) { r.ListingType = "trade" },
		"bad category":     func(r *CreateRequest) { r.Category = "misc" },
		"empty title":      func(r *CreateRequest) { r.Title = "" },
		"long title":       func(r *CreateRequest) { r.Title = string(make([]byte, 101)) },
		"empty description": func(r *CreateRequest) { r.Description = "" },
		"bad latitude":     func(r *CreateRequest) { r.Latitude = 99 },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			fn(req)
			_, err := svc.Create(context.Background(), "creator-1", req)
			assert.True(t, errors.Is(err, infrastructure.ErrInvalidInput))
		})
	}
}

func TestBrowseWithLocation(t *testing.T) {
	svc, _ := newTestService(t)

	near := validRequest()
	_, err := svc.Create(context.Background(), "c1", near)
	require.NoError(t, err)

	far := validRequest()
	far.Latitude = 41.0 // ~111km away
	farListing, err := svc.Create(context.Background(), "c2", far)
	require.NoError(t, err)

	lat, lng := 40.0, -74.0
	out, err := svc.Browse(context.Background(), Filter{}, &lat, &lng)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEqual(t, farListing.ID, out[0].ID)
	require.NotNil(t, out[0].Distance)
	assert.Less(t, *out[0].Distance, float64(searchRadiusMeters))
}

func TestBrowseWithoutLocation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "c1", validRequest())
	require.NoError(t, err)

	out, err := svc.Browse(context.Background(), Filter{}, nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Distance, "no distance without a query point")
}

func TestBrowseFilters(t *testing.T) {
	svc, _ := newTestService(t)

	offer := validRequest()
	_, err := svc.Create(context.Background(), "c1", offer)
	require.NoError(t, err)

	request := validRequest()
	request.ListingType = "request"
	request.Category = "housing"
	_, err = svc.Create(context.Background(), "c2", request)
	require.NoError(t, err)

	out, err := svc.Browse(context.Background(), Filter{ListingType: "request"}, nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "housing", out[0].Category)
}

func TestFulfillIsCreatorOnly(t *testing.T) {
	svc, repo := newTestService(t)

	listing, err := svc.Create(context.Background(), "creator-1", validRequest())
	require.NoError(t, err)

	err = svc.Fulfill(context.Background(), listing.ID, "someone-else")
	assert.True(t, errors.Is(err, infrastructure.ErrNotFound))

	require.NoError(t, svc.Fulfill(context.Background(), listing.ID, "creator-1"))
	assert.True(t, repo.listings[listing.ID].IsFulfilled)

	out, err := svc.Browse(context.Background(), Filter{}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out, "fulfilled listings are hidden")
}
