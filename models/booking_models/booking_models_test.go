package booking_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	v := t0.Add(d)
	return &v
}

func TestBuildListQuery(t *testing.T) {
	t.Run("Booker with status and window", func(t *testing.T) {
		sql, args := buildListQuery(Query{SubjectID: 7, Role: RoleBooker, Status: StatusWaiting, Limit: 10, Offset: 20})

		assert.Contains(t, sql, "WHERE b.booker_id = $1")
		assert.Contains(t, sql, "AND b.status = $2")
		assert.Contains(t, sql, "ORDER BY b.start_date DESC, b.id DESC LIMIT $3 OFFSET $4")
		assert.Equal(t, []any{int64(7), StatusWaiting, 10, 20}, args)
	})

	t.Run("Owner with time bounds", func(t *testing.T) {
		sql, args := buildListQuery(Query{SubjectID: 3, Role: RoleOwner, StartBefore: at(0), EndAfter: at(0)})

		assert.Contains(t, sql, "WHERE i.owner_id = $1")
		assert.Contains(t, sql, "AND b.start_date < $2")
		assert.Contains(t, sql, "AND b.end_date > $3")
		assert.NotContains(t, sql, "LIMIT")
		assert.NotContains(t, sql, "OFFSET")
		assert.Len(t, args, 3)
	})

	t.Run("Zero offset omitted", func(t *testing.T) {
		sql, _ := buildListQuery(Query{SubjectID: 1, Limit: 5})
		assert.Contains(t, sql, "LIMIT $2")
		assert.NotContains(t, sql, "OFFSET")
	})
}
