package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/service"
)

// TransactionHandler handles HTTP requests for transactions.
type TransactionHandler struct {
	service *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: svc}
}

// HandleCreate handles POST /transactions requests.
func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// HandleList handles GET /transactions requests. The optional type and
// category query parameters narrow the result.
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	txs, err := h.service.List(r.Context(), userID, model.TransactionFilter{
		Type:     model.TransactionType(q.Get("type")),
		Category: q.Get("category"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

// HandleGet handles GET /transactions/{id} requests.
func (h *TransactionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	tx, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// HandleUpdate handles PUT /transactions/{id} requests.
func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.UpdateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// HandleDelete handles DELETE /transactions/{id} requests.
func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
