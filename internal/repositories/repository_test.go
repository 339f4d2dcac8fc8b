package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/technotes/backend/internal/config"
	"github.com/technotes/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	testClient *mongo.Client
	testDB     *mongo.Database
	testLogger *zap.Logger
)

// TestMain connects to the test database when one is configured; tests skip
// otherwise
func TestMain(m *testing.M) {
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg := config.LoadTestConfig()
	if cfg.Database.URI != "" {
		testClient, err = Connect(context.Background(), cfg.Database.URI)
		if err != nil {
			panic(fmt.Sprintf("Failed to connect to test database: %v", err))
		}
		testDB = testClient.Database(cfg.Database.DBName)
	}

	code := m.Run()

	if testClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		testClient.Disconnect(ctx)
		cancel()
	}
	os.Exit(code)
}

func skipWithoutDatabase(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URI not set, skipping repository tests")
	}
}

func cleanupCollections(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Collection(usersCollection).Drop(context.Background()))
	require.NoError(t, testDB.Collection(notesCollection).Drop(context.Background()))
}

func TestUserRepository(t *testing.T) {
	skipWithoutDatabase(t)
	cleanupCollections(t)
	defer cleanupCollections(t)

	repo := NewUserRepository(testDB, testLogger)
	ctx := context.Background()

	user := &models.User{
		Username:     "hank",
		PasswordHash: "$2a$04$not-a-real-hash",
		Roles:        []string{"Employee"},
		Active:       true,
	}

	t.Run("Insert fills in the generated id", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, user))
		assert.False(t, user.ID.IsZero())
	})

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "hank", found.Username)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
	})

	t.Run("FindByID unknown id returns nil nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByUsername is case-sensitive", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "hank")
		require.NoError(t, err)
		require.NotNil(t, found)

		found, err = repo.FindByUsername(ctx, "HANK")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Update", func(t *testing.T) {
		user.Roles = []string{"Manager"}
		user.Active = false
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"Manager"}, found.Roles)
		assert.False(t, found.Active)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, user.ID))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestNoteRepository(t *testing.T) {
	skipWithoutDatabase(t)
	cleanupCollections(t)
	defer cleanupCollections(t)

	repo := NewNoteRepository(testDB, testLogger)
	ctx := context.Background()

	ownerID := primitive.NewObjectID()
	note := &models.Note{
		UserID: ownerID,
		Title:  "Fix ticket 42",
		Text:   "Replace the PSU",
	}

	t.Run("Insert stamps timestamps", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, note))
		assert.False(t, note.ID.IsZero())
		assert.False(t, note.CreatedAt.IsZero())
		assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	})

	t.Run("FindByTitle matches case-insensitively", func(t *testing.T) {
		for _, title := range []string{"Fix ticket 42", "FIX TICKET 42", "fix ticket 42"} {
			found, err := repo.FindByTitle(ctx, title)
			require.NoError(t, err)
			require.NotNil(t, found, "title %q should match", title)
			assert.Equal(t, note.ID, found.ID)
		}

		found, err := repo.FindByTitle(ctx, "Fix ticket 43")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ExistsByOwner", func(t *testing.T) {
		exists, err := repo.ExistsByOwner(ctx, ownerID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByOwner(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Update refreshes UpdatedAt", func(t *testing.T) {
		created := note.CreatedAt
		note.Completed = true
		require.NoError(t, repo.Update(ctx, note))

		found, err := repo.FindByID(ctx, note.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Completed)
		assert.Equal(t, created.Unix(), found.CreatedAt.Unix())
		assert.False(t, found.UpdatedAt.Before(found.CreatedAt))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, note.ID))

		found, err := repo.FindByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
