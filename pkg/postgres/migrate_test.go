package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("not a migration")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_first.sql", migrations[0].name)
	assert.Equal(t, "SELECT 1;", migrations[0].sql)
	assert.Equal(t, "002_second.sql", migrations[1].name)
	assert.Len(t, migrations[0].checksum, 64)
	assert.NotEqual(t, migrations[0].checksum, migrations[1].checksum)
}

func TestActivityMigrations_Embedded(t *testing.T) {
	migrations, err := loadMigrations(ActivityMigrations)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_activity.sql", migrations[0].name)
	assert.Equal(t, "002_activity_seq.sql", migrations[1].name)
	assert.Contains(t, migrations[1].sql, "seq BIGSERIAL")
}

func TestPendingMigrations(t *testing.T) {
	all, err := loadMigrations(fstest.MapFS{
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"002_second.sql": {Data: []byte("SELECT 2;")},
	})
	require.NoError(t, err)

	t.Run("nothing applied", func(t *testing.T) {
		pending, err := pendingMigrations(all, map[string]string{})
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("first applied", func(t *testing.T) {
		pending, err := pendingMigrations(all, map[string]string{"001_first.sql": all[0].checksum})
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "002_second.sql", pending[0].name)
	})

	t.Run("applied without checksum", func(t *testing.T) {
		pending, err := pendingMigrations(all, map[string]string{"001_first.sql": "", "002_second.sql": ""})
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("changed after apply", func(t *testing.T) {
		_, err := pendingMigrations(all, map[string]string{"001_first.sql": "deadbeef"})
		assert.ErrorContains(t, err, "001_first.sql was changed")
	})
}
