package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/technotes/backend/internal/models"
	"github.com/technotes/backend/internal/services"
	"go.uber.org/zap"
)

// NoteService is the interface that wraps methods for notes business logic.
type NoteService interface {
	// Method List retrieves all notes, each annotated with the owner's username.
	//
	// If the collection is empty or some error occurs, the error will be returned
	// together with "nil" value.
	List(ctx context.Context) ([]models.NoteWithUser, error)
	// Method Create validates the request and stores the new note.
	//
	// If a field is missing, the title is already taken (case-insensitively), or
	// some other error occurs, the error will be returned together with "nil" value.
	Create(ctx context.Context, req *models.CreateNoteRequest) (*models.Note, error)
	// Method Update validates the request and persists owner, title, text, and completed.
	//
	// If a field is missing or mistyped, the id does not resolve, the title is held
	// by a different note, or some other error occurs, the error will be returned
	// together with "nil" value.
	Update(ctx context.Context, req *models.UpdateNoteRequest) (*models.Note, error)
	// Method Delete removes a note unconditionally.
	//
	// If the id is missing or does not resolve, or some other error occurs, the
	// error will be returned together with "nil" value.
	Delete(ctx context.Context, id string) (*models.Note, error)
}

// NoteHandler handles HTTP requests for the notes resource
type NoteHandler struct {
	BaseHandler
	service NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(svc NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all note handler routes
func (h *NoteHandler) RegisterRoutes(r chi.Router) {
	r.Route("/notes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// List handles GET /notes
// @Summary List all notes
// @Description Get all notes, each annotated with the owning user's username
// @Tags notes
// @Produce json
// @Success 200 {array} models.NoteWithUser
// @Failure 400 {object} map[string]string "No notes found"
// @Router /notes [get]
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, notes)
}

// Create handles POST /notes
// @Summary Create a new note
// @Description Create a note with owner, title, and text
// @Tags notes
// @Accept json
// @Produce json
// @Param request body models.CreateNoteRequest true "New note"
// @Success 201 {object} map[string]string "Note created"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 409 {object} map[string]string "Duplicate note title"
// @Router /notes [post]
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if _, err := h.service.Create(r.Context(), &req); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondMessage(w, http.StatusCreated, "New note created")
}

// Update handles PATCH /notes
// @Summary Update a note
// @Description Update a note's owner, title, text, and completed flag
// @Tags notes
// @Accept json
// @Produce json
// @Param request body models.UpdateNoteRequest true "Updated note"
// @Success 200 {object} map[string]string "Note updated"
// @Failure 400 {object} map[string]string "Missing fields, note not found, or duplicate title"
// @Router /notes [patch]
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	note, err := h.service.Update(r.Context(), &req)
	if err != nil {
		// The update path reports duplicate titles as 400, not 409; clients of
		// the original service depend on it.
		var svcErr *services.Error
		if errors.As(err, &svcErr) && svcErr.Kind == services.KindConflict {
			h.respondMessage(w, http.StatusBadRequest, svcErr.Message)
			return
		}
		h.respondServiceError(w, err)
		return
	}

	h.respondMessage(w, http.StatusOK, fmt.Sprintf("Note updated with title %s", note.Title))
}

// Delete handles DELETE /notes
// @Summary Delete a note
// @Description Delete a note by id; notes have no dependents
// @Tags notes
// @Accept json
// @Produce json
// @Param request body models.DeleteNoteRequest true "Note id"
// @Success 200 {object} map[string]string "Note deleted"
// @Failure 400 {object} map[string]string "Missing id or note not found"
// @Router /notes [delete]
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Missing ID required.")
		return
	}

	note, err := h.service.Delete(r.Context(), req.ID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondMessage(w, http.StatusOK, fmt.Sprintf("Note deleted with ID %s", note.ID.Hex()))
}
