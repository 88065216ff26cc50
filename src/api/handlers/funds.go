package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListFunds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	fundType := r.URL.Query().Get("type")
	funds, err := h.Controller.ListFunds(ctx, fundType)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, funds, http.StatusOK)
}

func (h *Handler) GetFund(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	fund, err := h.Controller.GetFund(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, fund, http.StatusOK)
}
