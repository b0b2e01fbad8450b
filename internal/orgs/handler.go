package orgs

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prism/infrastructure"
	"prism/internal/geo"
)

const defaultRadiusKm = 10

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/orgs/ with optional type/safe_only/search filters
// and lat/lng/radius proximity filtering.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		OrgType:  q.Get("type"),
		SafeOnly: q.Get("safe_only") == "true",
		Search:   q.Get("search"),
	}

	all, err := h.repo.List(r.Context(), filter)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		items := make([]ListItem, 0, len(all))
		for _, org := range all {
			items = append(items, toListItem(org))
		}
		infrastructure.WriteJSON(w, http.StatusOK, items)
		return
	}

	lat, lng, err := geo.ParseCoordinates(latStr, lngStr)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	radiusKm := defaultRadiusKm
	if v := q.Get("radius"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			radiusKm = n
		}
	}

	nearby, distances := geo.FilterByRadius(all, lat, lng, float64(radiusKm)*1000)
	items := make([]ListItem, 0, len(nearby))
	for i, org := range nearby {
		item := toListItem(org)
		d := distances[i]
		item.Distance = &d
		items = append(items, item)
	}
	infrastructure.WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/orgs/{id}/.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, org)
}
