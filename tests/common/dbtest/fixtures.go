//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"wheelshare/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plain password of every user created by CreateTestUser.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
	hashErr     error
)

func passwordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		defaultHash, hashErr = password.NewHasher(bcrypt.MinCost).Hash(DefaultPassword)
	})
	require.NoError(t, hashErr)
	return defaultHash
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	name, _, _ := strings.Cut(email, "@")

	tag, err := db.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (email) DO NOTHING`,
		userID, email, name, passwordHash(t), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func DeactivateUser(t *testing.T, db DBLike, email string) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false WHERE email = $1", email)
	require.NoError(t, err)
}

func CreateTestResource(t *testing.T, db DBLike, ownerID uuid.UUID, kind, name string, unitPriceCents int64) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO resources (id, kind, owner_id, name, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5)`,
		resourceID, kind, ownerID, name, unitPriceCents)
	require.NoError(t, err)

	return resourceID
}

// ResourceCounters reads the completion counters of a resource.
func ResourceCounters(t *testing.T, db DBLike, resourceID uuid.UUID) (rentals, earningsCents int64) {
	t.Helper()
	err := db.QueryRow(context.Background(),
		"SELECT total_rentals, total_earnings_cents FROM resources WHERE id = $1", resourceID).
		Scan(&rentals, &earningsCents)
	require.NoError(t, err)
	return rentals, earningsCents
}

// CountOutboxEvents counts outbox rows for one aggregate.
func CountOutboxEvents(t *testing.T, db DBLike, aggregateID uuid.UUID) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM outbox_events WHERE aggregate_id = $1", aggregateID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	truncateOnce sync.Once
	truncateSQL  string
	truncateErr  error
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	truncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateErr = err
			return
		}
		defer rows.Close()

		var tables []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				truncateErr = err
				return
			}
			tables = append(tables, name)
		}
		if err := rows.Err(); err != nil {
			truncateErr = err
			return
		}
		if len(tables) == 0 {
			truncateSQL = "SELECT 1"
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	})
	if truncateErr != nil {
		return fmt.Errorf("build truncate statement: %w", truncateErr)
	}

	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
