package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/lib/pq"

	"problem-solver/internal/database"
)

// TestDatabase holds a migrated PostgreSQL container
type TestDatabase struct {
	Container    *postgres.PostgresContainer
	DB           *sql.DB
	DBConnString string
}

// SetupTestDatabase starts PostgreSQL and applies the migrations. It skips under -short.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18",
		postgres.WithDatabase("problem_solver_test"),
		postgres.WithUsername("problem_solver_test"),
		postgres.WithPassword("problem_solver_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	tdb := &TestDatabase{Container: container}
	t.Cleanup(func() { tdb.Cleanup(t) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}
	tdb.DBConnString = connStr

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	tdb.DB = db

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	if err := database.NewMigrationExecutor(db).RunMigrations(ctx, MigrationsDir(t)); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return tdb
}

// Cleanup closes the connection and terminates the container
func (tdb *TestDatabase) Cleanup(t *testing.T) {
	t.Helper()

	if tdb.DB != nil {
		_ = tdb.DB.Close()
		tdb.DB = nil
	}

	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			t.Errorf("Failed to terminate PostgreSQL container: %v", err)
		}
		tdb.Container = nil
	}
}

// MigrationsDir finds the migrations directory by walking up from the test's package
func MigrationsDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("migrations directory not found")
		}
		dir = parent
	}
}
