package handlers

import (
	"context"
	"net/http"
	"time"

	"invest/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req schemas.CreatePortfolioRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.Controller.CreatePortfolio(ctx, uid, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusCreated)
}

func (h *Handler) GetUserPortfolios(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	portfolios, err := h.Controller.GetUserPortfolios(ctx, uid)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolios, http.StatusOK)
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	detail, err := h.Controller.GetPortfolio(ctx, uid, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, detail, http.StatusOK)
}

func (h *Handler) UpdatePortfolioAllocation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req schemas.UpdateAllocationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.UpdateTargetAllocation(ctx, uid, chi.URLParam(r, "id"), req.Allocation); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "updated"}, http.StatusOK)
}

func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.Controller.DeletePortfolio(ctx, uid, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "deleted"}, http.StatusOK)
}
