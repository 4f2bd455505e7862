package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary"
)

const (
	maxBodyBytes = 1 << 20
	maxSeedBytes = 4 << 20
)

// itineraryService defines what ItineraryHandler needs from the service.
type itineraryService interface {
	StartTrip(ctx context.Context, in itinerary.StartTripInput) (domain.Document, error)
	GenerateWithAI(ctx context.Context, in itinerary.StartTripInput) (domain.Document, error)
	LoadSeed(ctx context.Context, raw []byte) (domain.Document, error)
	Reinitialize(ctx context.Context, in itinerary.StartTripInput) (domain.Document, error)
	Current(ctx context.Context) (itinerary.SessionState, error)

	AddItem(ctx context.Context, in itinerary.AddItemInput) (domain.Document, error)
	RemoveItem(ctx context.Context, in itinerary.RemoveItemInput) (domain.Document, error)
	RemoveItemByID(ctx context.Context, id string) (domain.Document, error)
	ReorderItem(ctx context.Context, in itinerary.ReorderItemInput) (domain.Document, error)
	RecomputeBudget(ctx context.Context, dayIndex int) (domain.Document, error)

	SelectDay(ctx context.Context, dayIndex int) (itinerary.ViewState, error)
	ToggleExpanded(ctx context.Context, dayIndex int) (itinerary.ViewState, error)

	Save(ctx context.Context) (domain.Document, error)
	Navigate(ctx context.Context, continuation bool) error
	Share(ctx context.Context, in itinerary.ShareInput) (domain.Document, error)
	SetStatus(ctx context.Context, status domain.ItineraryStatus) (domain.Document, error)
	Export(ctx context.Context) (itinerary.ExportResult, error)

	LoadSaved(ctx context.Context, id string) (domain.Document, error)
	List(ctx context.Context, in itinerary.ListInput) (itinerary.ListResult, error)
	Delete(ctx context.Context, id string) error
}

// ItineraryHandler serves the itinerary editing endpoints. Every route
// acts on the caller's active session.
type ItineraryHandler struct {
	svc itineraryService
	log *slog.Logger
}

// NewItineraryHandler creates an ItineraryHandler.
func NewItineraryHandler(svc itineraryService, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{svc: svc, log: logger.With("handler", "itinerary")}
}

// Register mounts the routes on mux. limitGenerate wraps the AI generation
// route only.
func (h *ItineraryHandler) Register(mux *http.ServeMux, limitGenerate func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/v1/itinerary/start", h.StartTrip)
	mux.Handle("POST /api/v1/itinerary/generate", limitGenerate(http.HandlerFunc(h.Generate)))
	mux.HandleFunc("POST /api/v1/itinerary/seed", h.LoadSeed)
	mux.HandleFunc("PUT /api/v1/itinerary/trip", h.Reinitialize)
	mux.HandleFunc("GET /api/v1/itinerary", h.Current)

	mux.HandleFunc("POST /api/v1/itinerary/days/{day}/items", h.AddItem)
	mux.HandleFunc("DELETE /api/v1/itinerary/days/{day}/sections/{section}/items/{pos}", h.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/itinerary/items/{id}", h.RemoveItemByID)
	mux.HandleFunc("POST /api/v1/itinerary/days/{day}/sections/{section}/reorder", h.ReorderItem)
	mux.HandleFunc("POST /api/v1/itinerary/days/{day}/budget", h.RecomputeBudget)

	mux.HandleFunc("PUT /api/v1/itinerary/view/selected/{day}", h.SelectDay)
	mux.HandleFunc("POST /api/v1/itinerary/view/expanded/{day}", h.ToggleExpanded)

	mux.HandleFunc("POST /api/v1/itinerary/save", h.Save)
	mux.HandleFunc("POST /api/v1/itinerary/navigate", h.Navigate)
	mux.HandleFunc("POST /api/v1/itinerary/share", h.Share)
	mux.HandleFunc("PUT /api/v1/itinerary/status", h.SetStatus)
	mux.HandleFunc("POST /api/v1/itinerary/export", h.Export)

	mux.HandleFunc("GET /api/v1/itineraries", h.List)
	mux.HandleFunc("GET /api/v1/itineraries/{id}", h.LoadSaved)
	mux.HandleFunc("DELETE /api/v1/itineraries/{id}", h.Delete)
}

// ---------------------------------------------------------------------------
// Request bodies
// ---------------------------------------------------------------------------

type tripRequest struct {
	Destination domain.Destination `json:"destination"`
	StartDate   domain.Date        `json:"startDate"`
	EndDate     domain.Date        `json:"endDate"`
	Interests   []string           `json:"interests"`
	Travelers   int                `json:"travelers"`
	Cuisines    []string           `json:"cuisines"`
	Budget      domain.TripBudget  `json:"budget"`
}

func (r tripRequest) input() itinerary.StartTripInput {
	return itinerary.StartTripInput{
		Destination: r.Destination,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Interests:   r.Interests,
		Travelers:   r.Travelers,
		Cuisines:    r.Cuisines,
		Budget:      r.Budget,
	}
}

type addItemRequest struct {
	Section string      `json:"section"`
	Item    domain.Item `json:"item"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type navigateRequest struct {
	Continuation bool `json:"continuation"`
}

type statusRequest struct {
	Status domain.ItineraryStatus `json:"status"`
}

type shareRequest struct {
	Recipients []string          `json:"recipients"`
	Visibility domain.Visibility `json:"visibility"`
}

// ---------------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------------

// StartTrip handles POST /api/v1/itinerary/start.
func (h *ItineraryHandler) StartTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.StartTrip(r.Context(), req.input())
	h.respond(w, r, http.StatusCreated, doc, err)
}

// Generate handles POST /api/v1/itinerary/generate.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.GenerateWithAI(r.Context(), req.input())
	h.respond(w, r, http.StatusCreated, doc, err)
}

// LoadSeed handles POST /api/v1/itinerary/seed. The body is the raw,
// untrusted itinerary document.
func (h *ItineraryHandler) LoadSeed(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSeedBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "seed document too large")
		return
	}
	doc, err := h.svc.LoadSeed(r.Context(), raw)
	h.respond(w, r, http.StatusCreated, doc, err)
}

// Reinitialize handles PUT /api/v1/itinerary/trip.
func (h *ItineraryHandler) Reinitialize(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.Reinitialize(r.Context(), req.input())
	h.respond(w, r, http.StatusOK, doc, err)
}

// Current handles GET /api/v1/itinerary.
func (h *ItineraryHandler) Current(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Current(r.Context())
	h.respond(w, r, http.StatusOK, state, err)
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// AddItem handles POST /api/v1/itinerary/days/{day}/items.
func (h *ItineraryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.AddItem(r.Context(), itinerary.AddItemInput{DayIndex: day, Section: req.Section, Item: req.Item})
	h.respond(w, r, http.StatusOK, doc, err)
}

// RemoveItem handles DELETE /api/v1/itinerary/days/{day}/sections/{section}/items/{pos}.
func (h *ItineraryHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	pos, ok := pathInt(w, r, "pos")
	if !ok {
		return
	}
	doc, err := h.svc.RemoveItem(r.Context(), itinerary.RemoveItemInput{
		DayIndex: day,
		Section:  r.PathValue("section"),
		Position: pos,
	})
	h.respond(w, r, http.StatusOK, doc, err)
}

// RemoveItemByID handles DELETE /api/v1/itinerary/items/{id}.
func (h *ItineraryHandler) RemoveItemByID(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.RemoveItemByID(r.Context(), r.PathValue("id"))
	h.respond(w, r, http.StatusOK, doc, err)
}

// ReorderItem handles POST /api/v1/itinerary/days/{day}/sections/{section}/reorder.
func (h *ItineraryHandler) ReorderItem(w http.ResponseWriter, r *http.Request) {
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	var req reorderRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.ReorderItem(r.Context(), itinerary.ReorderItemInput{
		DayIndex: day,
		Section:  r.PathValue("section"),
		From:     req.From,
		To:       req.To,
	})
	h.respond(w, r, http.StatusOK, doc, err)
}

// RecomputeBudget handles POST /api/v1/itinerary/days/{day}/budget.
func (h *ItineraryHandler) RecomputeBudget(w http.ResponseWriter, r *http.Request) {
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	doc, err := h.svc.RecomputeBudget(r.Context(), day)
	h.respond(w, r, http.StatusOK, doc, err)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// SelectDay handles PUT /api/v1/itinerary/view/selected/{day}.
func (h *ItineraryHandler) SelectDay(w http.ResponseWriter, r *http.Request) {
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	view, err := h.svc.SelectDay(r.Context(), day)
	h.respond(w, r, http.StatusOK, view, err)
}

// ToggleExpanded handles POST /api/v1/itinerary/view/expanded/{day}.
func (h *ItineraryHandler) ToggleExpanded(w http.ResponseWriter, r *http.Request) {
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	view, err := h.svc.ToggleExpanded(r.Context(), day)
	h.respond(w, r, http.StatusOK, view, err)
}

// ---------------------------------------------------------------------------
// Persistence and sharing
// ---------------------------------------------------------------------------

// Save handles POST /api/v1/itinerary/save.
func (h *ItineraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Save(r.Context())
	h.respond(w, r, http.StatusOK, doc, err)
}

// Navigate handles POST /api/v1/itinerary/navigate.
func (h *ItineraryHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.Navigate(r.Context(), req.Continuation); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Share handles POST /api/v1/itinerary/share.
func (h *ItineraryHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.Share(r.Context(), itinerary.ShareInput{Recipients: req.Recipients, Visibility: req.Visibility})
	h.respond(w, r, http.StatusOK, doc, err)
}

// SetStatus handles PUT /api/v1/itinerary/status.
func (h *ItineraryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}
	doc, err := h.svc.SetStatus(r.Context(), req.Status)
	h.respond(w, r, http.StatusOK, doc, err)
}

// Export handles POST /api/v1/itinerary/export.
func (h *ItineraryHandler) Export(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Export(r.Context())
	h.respond(w, r, http.StatusOK, res, err)
}

// ---------------------------------------------------------------------------
// Saved itineraries
// ---------------------------------------------------------------------------

// List handles GET /api/v1/itineraries?limit=&offset=.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}
	res, err := h.svc.List(r.Context(), itinerary.ListInput{Limit: limit, Offset: offset})
	h.respond(w, r, http.StatusOK, res, err)
}

// LoadSaved handles GET /api/v1/itineraries/{id} and opens a session on it.
func (h *ItineraryHandler) LoadSaved(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.LoadSaved(r.Context(), r.PathValue("id"))
	h.respond(w, r, http.StatusOK, doc, err)
}

// Delete handles DELETE /api/v1/itineraries/{id}.
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *ItineraryHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

func (h *ItineraryHandler) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, v)
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_path", name+" must be an integer")
		return 0, false
	}
	return n, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid_query", name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
