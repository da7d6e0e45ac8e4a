//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"

	"wheelshare/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResourceRepository_RecordCompletion(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		wantKind infra.RepositoryErrorKind
	}{
		{name: "カウンタをSQL側で加算する", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "リソースが無ければNOT_FOUND", tag: pgconn.NewCommandTag("UPDATE 0"), wantKind: infra.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
				return strings.Contains(q, "total_rentals = total_rentals + 1") &&
					strings.Contains(q, "total_earnings_cents = total_earnings_cents + $1")
			}), []any{int64(19500), id.String()}).Return(tt.tag, nil)

			err := NewResourceRepository(dbtx).RecordCompletion(context.Background(), id, 19500)

			if tt.wantKind == "" {
				require.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			dbtx.AssertExpectations(t)
		})
	}
}
