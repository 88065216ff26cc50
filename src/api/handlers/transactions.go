package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"invest/src/schemas"
	"invest/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Invest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req schemas.InvestRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	result, err := h.Controller.Invest(ctx, uid, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusCreated)
}

func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req schemas.RedeemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	result, err := h.Controller.Redeem(ctx, uid, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusCreated)
}

func (h *Handler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			h.HandleErrors(w, utils.ValidationError("invalid limit %q", limitStr))
			return
		}
	}

	transactions, err := h.Controller.GetUserTransactions(ctx, uid, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transactions, http.StatusOK)
}
