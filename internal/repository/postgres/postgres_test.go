package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/repository/postgres"
)

var _ domain.Database = (*postgres.DB)(nil)
var _ domain.RegistrationRepository = (*postgres.RegistrationRepository)(nil)

// newTestDB connects to HACKEVENT_TEST_POSTGRES_URL and starts from an
// empty schema. The test is skipped when the variable is unset.
func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	dsn := os.Getenv("HACKEVENT_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("HACKEVENT_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, dsn)
	require.NoError(t, err)

	reset := func() {
		_, err := db.SqlDB.ExecContext(ctx, "DROP TABLE IF EXISTS registrations, schema_migrations")
		require.NoError(t, err)
	}
	reset()
	t.Cleanup(func() {
		reset()
		db.Close()
	})

	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestRegistrationRepository(t *testing.T) {
	db := newTestDB(t)
	repo := db.Registrations()
	ctx := context.Background()
	t0 := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Registration{Email: "a@x.io", Name: "Ada", RegisteredAt: t0}))
	require.NoError(t, repo.Create(ctx, &domain.Registration{Email: "b@x.io", RegisteredAt: t0.Add(time.Minute)}))

	err := repo.Create(ctx, &domain.Registration{Email: "a@x.io", Name: "Other", RegisteredAt: t0.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	regs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "b@x.io", regs[0].Email)
	assert.Equal(t, "a@x.io", regs[1].Email)
	assert.Equal(t, "Ada", regs[1].Name)
	assert.Empty(t, regs[0].Organization)
	assert.True(t, regs[1].RegisteredAt.Equal(t0))
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))

	var count int
	require.NoError(t, db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}
