package services

import (
	"context"

	"github.com/technotes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NoteRepository is the interface that wraps methods for notes collection data access.
// Lookup methods return (nil, nil) when no document matches.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]models.Note, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error)
	// FindByTitle matches the title case-insensitively (collation strength 2).
	FindByTitle(ctx context.Context, title string) (*models.Note, error)
	ExistsByOwner(ctx context.Context, userID primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserLookupRepository is the subset of user data access the note service needs
// to annotate notes with their owner's username
type UserLookupRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// noteService implements the notes CRUD business rules
type noteService struct {
	notes  NoteRepository
	users  UserLookupRepository
	logger *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(notes NoteRepository, users UserLookupRepository, logger *zap.Logger) *noteService {
	return &noteService{
		notes:  notes,
		users:  users,
		logger: logger,
	}
}

// List returns all notes, each annotated with the owning user's username.
// Owners are resolved per note; a dangling owner reference yields an empty
// username rather than an error.
func (s *noteService) List(ctx context.Context) ([]models.NoteWithUser, error) {
	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, notFoundError("No notes found.")
	}

	annotated := make([]models.NoteWithUser, 0, len(notes))
	for _, note := range notes {
		username := ""
		user, err := s.users.FindByID(ctx, note.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			username = user.Username
		}
		annotated = append(annotated, models.NoteWithUser{Note: note, Username: username})
	}

	return annotated, nil
}

// Create validates the request, rejects case-insensitive duplicate titles, and
// stores the new note
func (s *noteService) Create(ctx context.Context, req *models.CreateNoteRequest) (*models.Note, error) {
	if req.UserID == "" || req.Title == "" || req.Text == "" {
		return nil, validationError("All fields are required")
	}

	ownerID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, validationError("Invalid note data received")
	}

	duplicate, err := s.notes.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, conflictError("Duplicate note title")
	}

	note := &models.Note{
		UserID: ownerID,
		Title:  req.Title,
		Text:   req.Text,
	}
	if err := s.notes.Insert(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created", zap.String("id", note.ID.Hex()), zap.String("title", note.Title))
	return note, nil
}

// Update validates the request and persists owner, title, text, and completed.
// Renaming a note to a title held by a different note is a conflict; keeping or
// re-casing its own title is allowed.
func (s *noteService) Update(ctx context.Context, req *models.UpdateNoteRequest) (*models.Note, error) {
	if req.ID == "" || req.OwnerID() == "" || req.Title == "" || req.Text == "" || req.Completed == nil {
		return nil, validationError("All fields are required.")
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, notFoundError("Note not found.")
	}

	ownerID, err := primitive.ObjectIDFromHex(req.OwnerID())
	if err != nil {
		return nil, validationError("Invalid note data received.")
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFoundError("Note not found.")
	}

	duplicate, err := s.notes.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != note.ID {
		return nil, conflictError("Duplicate note title.")
	}

	note.UserID = ownerID
	note.Title = req.Title
	note.Text = req.Text
	note.Completed = *req.Completed

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note updated", zap.String("id", note.ID.Hex()), zap.String("title", note.Title))
	return note, nil
}

// Delete removes a note unconditionally; notes have no dependents
func (s *noteService) Delete(ctx context.Context, rawID string) (*models.Note, error) {
	if rawID == "" {
		return nil, validationError("Missing ID required.")
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, notFoundError("Note not found.")
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFoundError("Note not found.")
	}

	if err := s.notes.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("note deleted", zap.String("id", note.ID.Hex()))
	return note, nil
}
