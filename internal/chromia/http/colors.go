package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/service"
	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/httpx"
)

type ColorsHandler struct {
	ColorService *service.ColorService
}

func colorView(c domain.Color) chromiasdk.Color {
	return chromiasdk.Color{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Hex,
		Author:    c.AuthorName,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func colorViews(colors []domain.Color) []chromiasdk.Color {
	out := make([]chromiasdk.Color, len(colors))
	for i, c := range colors {
		out[i] = colorView(c)
	}
	return out
}

// HandleCreate publishes a new color under the caller's account.
func (h *ColorsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req chromiasdk.CreateColorRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		chromiasdk.ErrValidation.WithMessage("invalid request body").WriteError(w)
		return
	}

	color, err := h.ColorService.Create(r.Context(), httpx.UserIDFromContext(r.Context()), req.Name, req.Color)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, colorView(color))
}

// HandleListOwn lists the caller's colors.
func (h *ColorsHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	colors, err := h.ColorService.ListOwn(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, colorViews(colors))
}

// HandleCommunity serves one page of the public feed. Bad page or limit
// values fall back to defaults rather than erroring.
func (h *ColorsHandler) HandleCommunity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	colors, pagination, err := h.ColorService.Community(r.Context(), page, limit, q.Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, chromiasdk.CommunityColorsResponse{
		Colors: colorViews(colors),
		Pagination: chromiasdk.Pagination{
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			Total:      pagination.Total,
			HasMore:    pagination.HasMore,
			TotalPages: pagination.TotalPages,
		},
	})
}

// HandleCount returns the total number of published colors.
func (h *ColorsHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.ColorService.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, chromiasdk.CountResponse{Count: count})
}
