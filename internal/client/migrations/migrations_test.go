package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_SameVersionsPerDialect(t *testing.T) {
	sqlite, err := fs.Glob(Migrations, DirSQLite+"/*.sql")
	require.NoError(t, err)
	pg, err := fs.Glob(Migrations, DirPostgres+"/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, sqlite)
	require.Len(t, pg, len(sqlite))
	for i := range sqlite {
		assert.Equal(t, sqlite[i][len(DirSQLite):], pg[i][len(DirPostgres):])
	}
}
