package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func TestForceTarget_FirstMigrationRerunsFromScratch(t *testing.T) {
	src, err := iofs.New(Files, ".")
	require.NoError(t, err)

	target, err := forceTarget(src, 1)
	require.NoError(t, err)
	require.Equal(t, database.NilVersion, target)
}

func TestForceTarget_StepsBackOneMigration(t *testing.T) {
	fsys := fstest.MapFS{
		"000001_init.up.sql":     {Data: []byte("SELECT 1;")},
		"000001_init.down.sql":   {Data: []byte("SELECT 1;")},
		"000004_extra.up.sql":    {Data: []byte("SELECT 1;")},
		"000004_extra.down.sql":  {Data: []byte("SELECT 1;")},
		"000007_latest.up.sql":   {Data: []byte("SELECT 1;")},
		"000007_latest.down.sql": {Data: []byte("SELECT 1;")},
	}
	src, err := iofs.New(fsys, ".")
	require.NoError(t, err)

	target, err := forceTarget(src, 7)
	require.NoError(t, err)
	require.Equal(t, 4, target)

	target, err = forceTarget(src, 1)
	require.NoError(t, err)
	require.Equal(t, database.NilVersion, target)
}
