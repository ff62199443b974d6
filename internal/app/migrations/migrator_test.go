package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SortsAndSkipsNonSQL(t *testing.T) {
	files := fstest.MapFS{
		"002_roles.sql":  {Data: []byte("SELECT 1;")},
		"001_init.sql":   {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
		"010_extras.sql": {Data: []byte("SELECT 1;")},
	}

	migrations, err := List(files)
	require.NoError(t, err)

	assert.Equal(t, []Migration{
		{Version: "001", Name: "001_init.sql"},
		{Version: "002", Name: "002_roles.sql"},
		{Version: "010", Name: "010_extras.sql"},
	}, migrations)
}

func TestList_RejectsBadNames(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{
			name:  "missing version separator",
			files: fstest.MapFS{"init.sql": {Data: []byte("")}},
		},
		{
			name: "duplicate version",
			files: fstest.MapFS{
				"001_init.sql":  {Data: []byte("")},
				"001_other.sql": {Data: []byte("")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := List(tt.files)
			assert.Error(t, err)
		})
	}
}

func TestSchema_ShipsInitialMigration(t *testing.T) {
	migrations, err := List(Schema())
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, "001", migrations[0].Version)
}
