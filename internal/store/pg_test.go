package store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testDB             *gorm.DB
	testDatabaseURL    string
	testMigrationsPath string
)

// TestMain starts the test database, migrates it and runs the suite
func TestMain(m *testing.M) {
	ctx := context.Background()

	databaseURL, terminate, err := startTestDatabase(ctx)
	if err != nil {
		fmt.Printf("Failed to start test database: %v\n", err)
		os.Exit(1)
	}

	code, err := runWithDatabase(m, databaseURL)
	if err != nil {
		fmt.Printf("Failed to prepare test database: %v\n", err)
		code = 1
	}

	terminate()
	os.Exit(code)
}

// startTestDatabase returns the URL of an external database configured with TEST_DB_*
// or of a fresh PostgreSQL container
func startTestDatabase(ctx context.Context) (string, func(), error) {
	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		databaseURL := (&url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(envOr("TEST_DB_USER", "postgres"), envOr("TEST_DB_PASSWORD", "postgres")),
			Host:     fmt.Sprintf("%s:%s", host, envOr("TEST_DB_PORT", "5432")),
			Path:     envOr("TEST_DB_NAME", "test_db"),
			RawQuery: "sslmode=disable",
		}).String()

		fmt.Printf("Using external database: %s\n", host)
		return databaseURL, func() {}, nil
	}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	fmt.Printf("Started PostgreSQL container\n")
	return databaseURL, terminate, nil
}

// runWithDatabase applies the migrations, connects and runs the tests
func runWithDatabase(m *testing.M, databaseURL string) (int, error) {
	migrationsPath, err := filepath.Abs(filepath.Join("..", "..", "db", "migrations"))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	if err := RunMigrations(databaseURL, migrationsPath); err != nil {
		return 0, err
	}

	testDB, err = gorm.Open(pgdriver.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}

	testDatabaseURL = databaseURL
	testMigrationsPath = migrationsPath
	return m.Run(), nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// initPGTestDB opens a transaction per test and rolls it back on cleanup
func initPGTestDB(t *testing.T) Store {
	// Start a transaction for test isolation
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	// Store the transaction in test context for cleanup
	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is a no-op, the rollback in initPGTestDB discards every row
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

func TestMigrationVersion(t *testing.T) {
	latest, err := filepath.Glob(filepath.Join(testMigrationsPath, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, latest)

	version, dirty, err := MigrationVersion(testDatabaseURL, testMigrationsPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, len(latest), version)

	// Applying again is a no-op
	require.NoError(t, RunMigrations(testDatabaseURL, testMigrationsPath))
}
