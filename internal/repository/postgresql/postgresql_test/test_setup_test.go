package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema. The
// test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, 5, 1)
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, database.Migrate(context.Background(), db))
	require.NoError(t, setup.TruncateAllTables(context.Background()))

	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows from the managed tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(database.Tables(), ", "))
	if _, err := s.DB.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// CreateEmployee inserts an employee row and returns its id
func (s *TestDatabaseSetup) CreateEmployee(t *testing.T, name string) string {
	t.Helper()

	id := uuid.Must(uuid.NewV7()).String()
	code := "EMP-" + id[len(id)-8:]
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO employees (id, employee_code, full_name, is_active)
		VALUES ($1, $2, $3, TRUE)
	`, id, code, name)
	require.NoError(t, err)
	return id
}

// Close closes the connection pool
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
