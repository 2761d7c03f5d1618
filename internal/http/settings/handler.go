package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/sapataria/internal/http/response"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

type Handler struct {
	store *inventory.Store
}

func NewHandler(store *inventory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dark-mode", h.darkMode)
	r.Post("/dark-mode", h.toggleDarkMode)
}

type darkModeResponse struct {
	DarkMode bool `json:"darkMode"`
}

func (h *Handler) darkMode(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, darkModeResponse{DarkMode: h.store.DarkMode()})
}

func (h *Handler) toggleDarkMode(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ToggleDarkMode(r.Context()); err != nil {
		slog.Error("failed to toggle dark mode", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	response.JSON(w, http.StatusOK, darkModeResponse{DarkMode: h.store.DarkMode()})
}
