package handlers

import (
	"context"
	"net/http"
	"time"

	"invest/src/schemas"
)

func (h *Handler) SubmitRiskAssessment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req schemas.SubmitAssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	result, err := h.Controller.SubmitRiskAssessment(ctx, uid, req.QuestionnaireAnswers)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusCreated)
}

func (h *Handler) GetRiskAssessment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	uid, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.Controller.GetLatestRiskAssessment(ctx, uid)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}
