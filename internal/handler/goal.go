package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/service"
)

// GoalHandler handles HTTP requests for savings goals.
type GoalHandler struct {
	service *service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc *service.GoalService) *GoalHandler {
	return &GoalHandler{service: svc}
}

// HandleCreate handles POST /goals requests.
func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.CreateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// HandleList handles GET /goals requests.
func (h *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	goals, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// HandleGet handles GET /goals/{id} requests.
func (h *GoalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	goal, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// HandleUpdate handles PUT /goals/{id} requests.
func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.UpdateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// HandleDelete handles DELETE /goals/{id} requests.
func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
