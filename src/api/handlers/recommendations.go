package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) GenerateRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	recommendation, err := h.Controller.GenerateRecommendation(ctx, uid)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, recommendation, http.StatusCreated)
}

func (h *Handler) GetActiveRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	recommendation, err := h.Controller.GetActiveRecommendation(ctx, uid)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, recommendation, http.StatusOK)
}
