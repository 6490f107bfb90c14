package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupTestDB connects with the given driver ("pgx" or "postgres") and applies the schema.
func setupTestDB(t *testing.T, driver string) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "habitzen"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "habitzen_test"),
	)

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}

	migrations, err := filepath.Glob("../../../migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	sort.Strings(migrations)
	for _, file := range migrations {
		schema, err := os.ReadFile(file)
		require.NoError(t, err)
		_, err = db.Exec(string(schema))
		require.NoError(t, err, "Failed to apply %s", filepath.Base(file))
	}

	cleanup(t, db)
	t.Cleanup(func() {
		cleanup(t, db)
		db.Close()
	})
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec(`TRUNCATE TABLE challenge_participants, challenges, post_comments, post_likes,
		community_posts, friendships, friend_requests, completions, habits, users CASCADE`)
	require.NoError(t, err, "Failed to clean up database")
}

func createTestUser(t *testing.T, db *sqlx.DB, username string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(uuid.NewString(), username+"@habitzen.app", username)
	require.NoError(t, err)
	u.PasswordHash = "hash"
	require.NoError(t, NewPostgresUserRepository(db).Create(context.Background(), u))
	return u
}

func TestPostgresHabitRepository_Integration(t *testing.T) {
	db := setupTestDB(t, "pgx")
	repo := NewPostgresHabitRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "habit_owner")

	habit, err := domain.NewHabit(user.ID, "Test Integration Habit", "Checking if SQL works", "fitness")
	require.NoError(t, err)

	t.Run("Create Habit", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, habit))
	})

	t.Run("Get By ID", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, habit.Title, fetched.Title)
		assert.Equal(t, "fitness", fetched.Category)
		assert.False(t, fetched.IsCompleted)
	})

	t.Run("Update Habit", func(t *testing.T) {
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, habit.Update("Updated Title", "", "health"))
		require.NoError(t, repo.Update(ctx, habit))

		updated, err := repo.GetByID(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)
		assert.Equal(t, "health", updated.Category)
	})

	t.Run("List By UserID", func(t *testing.T) {
		list, err := repo.ListByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, habit.ID, list[0].ID)
	})

	t.Run("Unknown owner violates foreign key", func(t *testing.T) {
		orphan, _ := domain.NewHabit("no-such-user", "Orphan", "", "")
		assert.ErrorIs(t, repo.Create(ctx, orphan), domain.ErrUserNotFound)
	})

	t.Run("Delete cascades completions", func(t *testing.T) {
		completions := NewPostgresCompletionRepository(db)
		_, err := completions.Insert(ctx, domain.NewCompletion(habit.ID, user.ID, time.Now()))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, habit.ID))

		_, err = repo.GetByID(ctx, habit.ID)
		assert.Equal(t, domain.ErrHabitNotFound, err)

		var count int
		require.NoError(t, db.Get(&count, "SELECT count(*) FROM completions WHERE habit_id = $1", habit.ID))
		assert.Equal(t, 0, count)
	})

	t.Run("Update/Delete Non-Existent ID", func(t *testing.T) {
		ghost, _ := domain.NewHabit(user.ID, "Ghost", "", "")
		assert.Equal(t, domain.ErrHabitNotFound, repo.Update(ctx, ghost))
		assert.Equal(t, domain.ErrHabitNotFound, repo.Delete(ctx, uuid.NewString()))
	})
}

func TestPostgresCompletionRepository_Integration(t *testing.T) {
	db := setupTestDB(t, "pgx")
	repo := NewPostgresCompletionRepository(db)
	habits := NewPostgresHabitRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "completer")
	habit, _ := domain.NewHabit(user.ID, "Stretch", "", "")
	require.NoError(t, habits.Create(ctx, habit))

	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Insert is idempotent", func(t *testing.T) {
		created, err := repo.Insert(ctx, domain.NewCompletion(habit.ID, user.ID, day))
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.Insert(ctx, domain.NewCompletion(habit.ID, user.ID, day))
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("List returns normalized dates", func(t *testing.T) {
		_, err := repo.Insert(ctx, domain.NewCompletion(habit.ID, user.ID, day.AddDate(0, 0, -1)))
		require.NoError(t, err)

		list, err := repo.ListByUserID(ctx, user.ID, "2024-03-01", "2024-03-31")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "2024-03-13", list[0].Date)
		assert.Equal(t, "2024-03-14", list[1].Date)

		outside, err := repo.ListByUserID(ctx, user.ID, "2024-04-01", "2024-04-30")
		require.NoError(t, err)
		assert.Empty(t, outside)
	})

	t.Run("Unknown habit", func(t *testing.T) {
		_, err := repo.Insert(ctx, domain.NewCompletion("missing", user.ID, day))
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		removed, err := repo.Remove(ctx, user.ID, habit.ID, "2024-03-14")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Remove(ctx, user.ID, habit.ID, "2024-03-14")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}
