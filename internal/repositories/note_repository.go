package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/technotes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// caseInsensitive is the collation used for title uniqueness lookups.
// Strength 2 treats letters differing only in case as equal.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

// noteRepository implements note data access over the notes collection
type noteRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *mongo.Database, logger *zap.Logger) *noteRepository {
	return &noteRepository{
		coll:   db.Collection(notesCollection),
		logger: logger,
	}
}

// FindAll retrieves every note
func (r *noteRepository) FindAll(ctx context.Context) ([]models.Note, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		r.logger.Error("failed to query notes", zap.Error(err))
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		r.logger.Error("failed to decode notes", zap.Error(err))
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}

	return notes, nil
}

// FindByID retrieves a note by ID. Returns (nil, nil) when no note matches.
func (r *noteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find note by id", zap.Error(err), zap.String("id", id.Hex()))
		return nil, fmt.Errorf("failed to find note by id: %w", err)
	}

	return &note, nil
}

// FindByTitle retrieves a note whose title matches case-insensitively.
// Returns (nil, nil) when no note matches.
func (r *noteRepository) FindByTitle(ctx context.Context, title string) (*models.Note, error) {
	var note models.Note
	opts := options.FindOne().SetCollation(&caseInsensitive)
	err := r.coll.FindOne(ctx, bson.M{"title": title}, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find note by title", zap.Error(err), zap.String("title", title))
		return nil, fmt.Errorf("failed to find note by title: %w", err)
	}

	return &note, nil
}

// ExistsByOwner reports whether any note references the given user as owner
func (r *noteRepository) ExistsByOwner(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		r.logger.Error("failed to count notes by owner", zap.Error(err), zap.String("userId", userID.Hex()))
		return false, fmt.Errorf("failed to count notes by owner: %w", err)
	}
	return count > 0, nil
}

// Insert stores a new note, stamps its timestamps, and fills in its generated ID
func (r *noteRepository) Insert(ctx context.Context, note *models.Note) error {
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, note)
	if err != nil {
		r.logger.Error("failed to insert note", zap.Error(err))
		return fmt.Errorf("failed to insert note: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		note.ID = id
	}
	return nil
}

// Update replaces the stored note document and refreshes its update timestamp
func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now().UTC()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": note.ID}, note)
	if err != nil {
		r.logger.Error("failed to update note", zap.Error(err), zap.String("id", note.ID.Hex()))
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

// Delete removes a note by ID
func (r *noteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("failed to delete note", zap.Error(err), zap.String("id", id.Hex()))
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
