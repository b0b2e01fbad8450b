package beacons

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	beacons []*Beacon
}

func (f *fakeRepository) Create(_ context.Context, beacon *Beacon) error {
	stored := *beacon
	f.beacons = append(f.beacons, &stored)
	return nil
}

func (f *fakeRepository) ActiveByTopic(_ context.Context, topic, geohashPrefix string) ([]Beacon, error) {
	var out []Beacon
	for _, b := range f.beacons {
		if b.Topic != topic || !b.ExpiresAt.After(time.Now()) {
			continue
		}
		if geohashPrefix != "" && !strings.HasPrefix(b.Geohash, geohashPrefix) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func newTestRouter(repo Repository) *mux.Router {
	h := NewHandler(repo)
	r := mux.NewRouter()
	r.HandleFunc("/api/beacons/", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/beacons/", h.Create).Methods(http.MethodPost)
	return r
}

func post(t *testing.T, router *mux.Router, body interface{}, userHash string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/beacons/", &buf)
	if userHash != "" {
		req.Header.Set("X-User-Hash", userHash)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateBeacon(t *testing.T) {
	repo := &fakeRepository{}
	router := newTestRouter(repo)

	body := createRequest{Topic: "trans_fem", BroadcastHash: "bhash", Geohash: "dr5ru"}

	t.Run("requires identity", func(t *testing.T) {
		rec := post(t, router, body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("creates with expiry", func(t *testing.T) {
		rec := post(t, router, body, "user-1")
		require.Equal(t, http.StatusCreated, rec.Code)
		var b Beacon
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, b.CreatedAt.Add(lifetime), b.ExpiresAt)
	})

	t.Run("rejects unknown topic", func(t *testing.T) {
		bad := body
		bad.Topic = "stamp_collectors"
		rec := post(t, router, bad, "user-1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects long geohash", func(t *testing.T) {
		bad := body
		bad.Geohash = "dr5ru7z"
		rec := post(t, router, bad, "user-1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBeacons(t *testing.T) {
	repo := &fakeRepository{}
	router := newTestRouter(repo)

	require.Equal(t, http.StatusCreated, post(t, router, createRequest{
		Topic: "newly_out", BroadcastHash: "b1", Geohash: "dr5ru",
	}, "u1").Code)
	require.Equal(t, http.StatusCreated, post(t, router, createRequest{
		Topic: "newly_out", BroadcastHash: "b2", Geohash: "gbsuv",
	}, "u2").Code)

	t.Run("topic required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beacons/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filters by topic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beacons/?topic=newly_out", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var out []Beacon
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Len(t, out, 2)
	})

	t.Run("geohash prefix narrows results", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beacons/?topic=newly_out&geohash=dr5ru7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var out []Beacon
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out, 1, "prefix truncated to 4 chars before matching")
		assert.Equal(t, "b1", out[0].BroadcastHash)
	})

	t.Run("empty topic list is an array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beacons/?topic=queer_sober", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}
