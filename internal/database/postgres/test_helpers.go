package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/Tippspiel_Go/internal/database"
	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// startTestDatabase spins up a throwaway Postgres container, applies the
// migrations and returns a connected pool. Skips the test when Docker is
// unavailable.
func startTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	var pgContainer *tcpostgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("testuser"),
			tcpostgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		t.Skip("no postgres container available")
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr, 5, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := applyMigrations(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}

// applyMigrations runs all migration files in order, stripping goose
// markers so they can be executed directly
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			migrationFiles = append(migrationFiles, filepath.Join(migrationsDir, entry.Name()))
		}
	}
	sort.Strings(migrationFiles)

	for _, file := range migrationFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		contentStr := strings.Replace(string(content), "-- +goose Up", "", 1)
		if downIdx := strings.Index(contentStr, "-- +goose Down"); downIdx != -1 {
			contentStr = contentStr[:downIdx]
		}

		if _, err := pool.Exec(ctx, strings.TrimSpace(contentStr)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// createTestUser inserts a user with a unique username
func createTestUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username}
	if err := NewUserRepository(pool).Create(ctx, user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestMatch inserts a match bettable without a result
func createTestMatch(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string, kickoff time.Time) *domain.Bettable {
	t.Helper()
	bettable := &domain.Bettable{
		ID:       uuid.New(),
		Kind:     domain.KindMatch,
		Name:     name,
		Deadline: kickoff,
		Match: &domain.MatchDetails{
			HomeTeam: "Germany",
			AwayTeam: "France",
			Kickoff:  kickoff,
			Goals:    domain.UnsetScore(),
		},
	}
	if err := NewBettableRepository(pool).Create(ctx, bettable); err != nil {
		t.Fatalf("failed to create test match: %v", err)
	}
	return bettable
}
