package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRun builds a repo that renders SQL without a server.
func dryRun(t *testing.T) (*KVRepo, *[]string) {
	t.Helper()
	db, err := gorm.Open(gormpg.Open("host=localhost user=x password=x dbname=x sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var stmts []string
	capture := func(tx *gorm.DB) { stmts = append(stmts, tx.Statement.SQL.String()) }
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture", capture))
	return NewKVRepo(db), &stmts
}

func TestKVRepoPutUpserts(t *testing.T) {
	r, stmts := dryRun(t)
	require.NoError(t, r.Put(context.Background(), "cart", []byte(`[]`)))
	require.Len(t, *stmts, 1)
	sql := (*stmts)[0]
	assert.Contains(t, sql, `INSERT INTO "kv_entries"`)
	assert.Contains(t, sql, `ON CONFLICT ("key") DO UPDATE SET`)
	assert.Contains(t, sql, `"value"="excluded"."value"`)
}

func TestKVRepoDeleteByKey(t *testing.T) {
	r, stmts := dryRun(t)
	require.NoError(t, r.Delete(context.Background(), "adminApiKey"))
	require.Len(t, *stmts, 1)
	assert.Contains(t, (*stmts)[0], `DELETE FROM "kv_entries" WHERE key = $1`)
}
