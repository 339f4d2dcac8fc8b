package services

import (
	"context"

	"github.com/technotes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for users collection data access.
// Lookup methods return (nil, nil) when no document matches.
type UserRepository interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindByUsername matches the username exactly (case-sensitive); see the
	// collation note in DESIGN.md.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NoteOwnershipRepository is the subset of note data access the user service
// needs for delete-integrity checks
type NoteOwnershipRepository interface {
	ExistsByOwner(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

// userService implements the users CRUD business rules
type userService struct {
	users      UserRepository
	notes      NoteOwnershipRepository
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(users UserRepository, notes NoteOwnershipRepository, logger *zap.Logger, bcryptCost int) *userService {
	return &userService{
		users:      users,
		notes:      notes,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// List returns all users. The password hash is excluded from responses by the
// model's JSON tags.
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, notFoundError("No users found.")
	}
	return users, nil
}

// Create validates the request, rejects duplicate usernames, hashes the
// password, and stores the new user. New users start active.
func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" || len(req.Roles) == 0 {
		return nil, validationError("All fields are required.")
	}

	duplicate, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, conflictError("Duplicate username.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Roles:        req.Roles,
		Active:       true,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("id", user.ID.Hex()), zap.String("username", user.Username))
	return user, nil
}

// Update validates the request, rejects usernames held by a different user, and
// persists username, roles, and active. The password hash is replaced only when
// a new password is supplied.
func (s *userService) Update(ctx context.Context, req *models.UpdateUserRequest) (*models.User, error) {
	if req.ID == "" || req.Username == "" || len(req.Roles) == 0 || req.Active == nil {
		return nil, validationError("All fields are required.")
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, notFoundError("User not found.")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User not found.")
	}

	// Allow updates to the original user: only a different id holding the
	// username is a conflict.
	duplicate, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != user.ID {
		return nil, conflictError("Username already existing.")
	}

	user.Username = req.Username
	user.Roles = req.Roles
	user.Active = *req.Active

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.String("id", user.ID.Hex()), zap.String("username", user.Username))
	return user, nil
}

// Delete removes a user, unless any note still references it as owner. The
// ownership check runs before the user lookup, matching the original service.
func (s *userService) Delete(ctx context.Context, rawID string) (*models.User, error) {
	if rawID == "" {
		return nil, validationError("User ID is required.")
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, notFoundError("User not found.")
	}

	hasNotes, err := s.notes.ExistsByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasNotes {
		return nil, blockedError("User has assigned notes.")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User not found.")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("user deleted", zap.String("id", user.ID.Hex()), zap.String("username", user.Username))
	return user, nil
}
