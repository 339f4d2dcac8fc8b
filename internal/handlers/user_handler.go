package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/technotes/backend/internal/models"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for users business logic.
type UserService interface {
	// Method List retrieves all users with the credential field excluded.
	//
	// If the collection is empty or some error occurs, the error will be returned
	// together with "nil" value.
	List(ctx context.Context) ([]models.User, error)
	// Method Create validates the request, hashes the password, and stores the new user.
	//
	// If a field is missing, the username is already taken, or some other error
	// occurs, the error will be returned together with "nil" value.
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// Method Update validates the request and persists username, roles, active, and
	// optionally a re-hashed password.
	//
	// If a field is missing or mistyped, the id does not resolve, the username is
	// taken by a different user, or some other error occurs, the error will be
	// returned together with "nil" value.
	Update(ctx context.Context, req *models.UpdateUserRequest) (*models.User, error)
	// Method Delete removes a user unless any note still references it as owner.
	//
	// If the id is missing or does not resolve, the user still has notes, or some
	// other error occurs, the error will be returned together with "nil" value.
	Delete(ctx context.Context, id string) (*models.User, error)
}

// UserHandler handles HTTP requests for the users resource
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// List handles GET /users
// @Summary List all users
// @Description Get all users with the password hash excluded
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 400 {object} map[string]string "No users found"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// Create handles POST /users
// @Summary Create a new user
// @Description Create a user with username, password, and a non-empty roles list
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "New user"
// @Success 201 {object} map[string]string "User created"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 409 {object} map[string]string "Duplicate username"
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondMessage(w, http.StatusCreated, fmt.Sprintf("New user %s created.", user.Username))
}

// Update handles PATCH /users
// @Summary Update a user
// @Description Update username, roles, and active; re-hash the password only when one is supplied
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Updated user"
// @Success 200 {object} map[string]string "User updated"
// @Failure 400 {object} map[string]string "Missing fields or user not found"
// @Failure 409 {object} map[string]string "Username already existing"
// @Router /users [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, err := h.service.Update(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondMessage(w, http.StatusOK, fmt.Sprintf("%s updated.", user.Username))
}

// Delete handles DELETE /users
// @Summary Delete a user
// @Description Delete a user; refused while any note references the user as owner
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.DeleteUserRequest true "User id"
// @Success 200 {object} map[string]string "User deleted"
// @Failure 400 {object} map[string]string "Missing id, user not found, or user has notes"
// @Router /users [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	user, err := h.service.Delete(r.Context(), req.ID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondMessage(w, http.StatusOK, fmt.Sprintf("Username %s with ID %s deleted.", user.Username, user.ID.Hex()))
}
