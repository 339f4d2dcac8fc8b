package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/technotes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// userRepository implements user data access over the users collection
type userRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, logger *zap.Logger) *userRepository {
	return &userRepository{
		coll:   db.Collection(usersCollection),
		logger: logger,
	}
}

// FindAll retrieves every user
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		r.logger.Error("failed to query users", zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		r.logger.Error("failed to decode users", zap.Error(err))
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// FindByID retrieves a user by ID. Returns (nil, nil) when no user matches.
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find user by id", zap.Error(err), zap.String("id", id.Hex()))
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &user, nil
}

// FindByUsername retrieves a user by exact username match. Returns (nil, nil)
// when no user matches.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	return &user, nil
}

// Insert stores a new user and fills in its generated ID
func (r *userRepository) Insert(ctx context.Context, user *models.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		r.logger.Error("failed to insert user", zap.Error(err))
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// Update replaces the stored user document
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		r.logger.Error("failed to update user", zap.Error(err), zap.String("id", user.ID.Hex()))
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user by ID
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.String("id", id.Hex()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
