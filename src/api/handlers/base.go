package handlers

import (
	"encoding/json"
	"net/http"

	"invest/src/api/controllers"
	"invest/src/utils"
)

type Handler struct {
	Controller controllers.IController
}

func NewHandler(controller controllers.IController) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps domain errors to HTTP responses.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	utils.WriteError(w, utils.FromDomainError(err))
}

// userID pulls the authenticated user identifier injected by the identity
// provider in front of this service. The core treats it as an opaque key.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (h *Handler) requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := userID(r)
	if id == "" {
		utils.WriteError(w, utils.BadRequest("missing X-User-ID header"))
		return "", false
	}
	return id, true
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.ValidationError("invalid request body: %v", err)
	}
	return nil
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
