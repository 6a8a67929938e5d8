package tenant_test

import (
	"testing"

	"github.com/danny20232023/hris-sub007/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return gdb
}

func TestScope(t *testing.T) {
	var rows []map[string]any
	stmt := dryRun(t).Table("leave_requests").Scopes(tenant.Scope("c1")).Find(&rows).Statement

	assert.Equal(t, `SELECT * FROM "leave_requests" WHERE company_id = $1`, stmt.SQL.String())
	assert.Equal(t, []any{"c1"}, stmt.Vars)
}

func TestScopeAs(t *testing.T) {
	var rows []map[string]any
	stmt := dryRun(t).
		Table("travel_requests AS tr").
		Joins("JOIN travel_request_employees AS tre ON tre.travel_request_id = tr.id").
		Scopes(tenant.ScopeAs("tr", "c1")).
		Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "WHERE tr.company_id = $1")
	assert.Equal(t, []any{"c1"}, stmt.Vars)
}
