package http

import (
	"net/http"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/service"
	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/httpx"
)

type PalettesHandler struct {
	PaletteService *service.PaletteService
}

func paletteView(p domain.Palette) chromiasdk.Palette {
	colors := make([]chromiasdk.PaletteColor, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = chromiasdk.PaletteColor{Name: c.Name, Color: c.Hex}
	}

	return chromiasdk.Palette{
		ID:        p.ID,
		Name:      p.Name,
		Colors:    colors,
		Author:    p.AuthorName,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func paletteColors(colors []chromiasdk.PaletteColor) []domain.PaletteColor {
	out := make([]domain.PaletteColor, len(colors))
	for i, c := range colors {
		out[i] = domain.PaletteColor{Name: c.Name, Hex: c.Color}
	}
	return out
}

// HandleCreate stores a new palette for the caller.
func (h *PalettesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req chromiasdk.PaletteRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		chromiasdk.ErrValidation.WithMessage("invalid request body").WriteError(w)
		return
	}

	palette, err := h.PaletteService.Create(r.Context(), httpx.UserIDFromContext(r.Context()), req.Name, paletteColors(req.Colors))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, paletteView(palette))
}

// HandleListOwn lists the caller's palettes.
func (h *PalettesHandler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	palettes, err := h.PaletteService.ListOwn(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views := make([]chromiasdk.Palette, len(palettes))
	for i, p := range palettes {
		views[i] = paletteView(p)
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

// HandleGet fetches one palette the caller owns.
func (h *PalettesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	palette, err := h.PaletteService.Get(r.Context(), r.PathValue("id"), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, paletteView(palette))
}

// HandleUpdate replaces a palette's name and colors.
func (h *PalettesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req chromiasdk.PaletteRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		chromiasdk.ErrValidation.WithMessage("invalid request body").WriteError(w)
		return
	}

	palette, err := h.PaletteService.Update(r.Context(), r.PathValue("id"), httpx.UserIDFromContext(r.Context()), req.Name, paletteColors(req.Colors))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, paletteView(palette))
}

// HandleDelete removes a palette.
func (h *PalettesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PaletteService.Delete(r.Context(), r.PathValue("id"), httpx.UserIDFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, chromiasdk.MessageResponse{Message: "palette deleted"})
}
