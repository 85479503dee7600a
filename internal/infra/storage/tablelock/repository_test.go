package tablelock

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertLocks_DeduplicatesTables(t *testing.T) {
	until := time.Date(2026, 2, 20, 19, 15, 0, 0, time.UTC)

	query, args, err := insertLocks([]int64{11, 12, 11}, "holder", until).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO table_locks (table_id,holder_id,locked_until) VALUES ($1,$2,$3),($4,$5,$6)"))
	assert.Equal(t, []interface{}{int64(11), "holder", until, int64(12), "holder", until}, args)
}

func TestAcquireSuffix_NumbersPlaceholders(t *testing.T) {
	until := time.Date(2026, 2, 20, 19, 15, 0, 0, time.UTC)
	now := until.Add(-15 * time.Minute)

	query, args, err := insertLocks([]int64{4}, "holder", until).
		Suffix("ON CONFLICT (table_id) DO UPDATE SET holder_id = EXCLUDED.holder_id WHERE table_locks.locked_until <= ? RETURNING table_id", now).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "table_locks.locked_until <= $4")
	assert.Len(t, args, 4)
}
