package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/service"
)

// RecurringHandler handles HTTP requests for recurring transactions.
type RecurringHandler struct {
	service *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(svc *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{service: svc}
}

// HandleCreate handles POST /recurring-transactions requests.
func (h *RecurringHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.CreateRecurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

// HandleList handles GET /recurring-transactions requests.
func (h *RecurringHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rules, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rules)
}

// HandleGet handles GET /recurring-transactions/{id} requests.
func (h *RecurringHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rule, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// HandleUpdate handles PUT /recurring-transactions/{id} requests.
func (h *RecurringHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.UpdateRecurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// HandleDelete handles DELETE /recurring-transactions/{id} requests.
func (h *RecurringHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
