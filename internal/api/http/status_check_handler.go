package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/service"
)

// StatusCheckHandler serves the JSON status check API under /api
type StatusCheckHandler struct {
	service service.StatusCheckService
}

// NewStatusCheckHandler creates a new status check handler
func NewStatusCheckHandler(svc service.StatusCheckService) *StatusCheckHandler {
	return &StatusCheckHandler{service: svc}
}

// Root handles GET /api/
func (h *StatusCheckHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

// createRequest tells a missing client_name apart from an empty one.
type createRequest struct {
	ClientName *string `json:"client_name"`
}

// Create handles POST /api/status. A body that does not decode or lacks
// client_name is 422; an empty client_name is accepted.
func (h *StatusCheckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "Invalid JSON body"})
		return
	}
	if req.ClientName == nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "client_name: field required"})
		return
	}

	check, err := h.service.Create(r.Context(), domain.StatusCheckCreate{ClientName: *req.ClientName})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
			return
		}
		logger.ErrorContext(r.Context(), "Failed to create status check", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// List handles GET /api/status
func (h *StatusCheckHandler) List(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list status checks", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, checks)
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// RegisterStatusCheckRoutes registers the status check API on an /api subrouter
func RegisterStatusCheckRoutes(api *mux.Router, handler *StatusCheckHandler) {
	api.HandleFunc("/", handler.Root).Methods(http.MethodGet)
	api.HandleFunc("/status", handler.Create).Methods(http.MethodPost)
	api.HandleFunc("/status", handler.List).Methods(http.MethodGet)
}
