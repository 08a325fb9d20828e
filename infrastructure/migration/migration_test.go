package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		want    []int
		wantErr string
	}{
		{
			name: "Ordena pela versão numérica",
			files: fstest.MapFS{
				"V10__add_index.sql":      {Data: []byte("SELECT 1;")},
				"V2__create_accounts.sql": {Data: []byte("SELECT 1;")},
				"V1__create_users.sql":    {Data: []byte("SELECT 1;")},
				"README.md":               {Data: []byte("ignorado")},
			},
			want: []int{1, 2, 10},
		},
		{
			name: "Nome fora do padrão",
			files: fstest.MapFS{
				"create_users.sql": {Data: []byte("SELECT 1;")},
			},
			wantErr: "nome de migration inválido",
		},
		{
			name: "Versão duplicada",
			files: fstest.MapFS{
				"V1__create_users.sql": {Data: []byte("SELECT 1;")},
				"V01__outra.sql":       {Data: []byte("SELECT 1;")},
			},
			wantErr: "duplicada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrations, err := Load(tt.files)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			versions := make([]int, 0, len(migrations))
			for _, m := range migrations {
				versions = append(versions, m.Version)
			}
			assert.Equal(t, tt.want, versions)
		})
	}
}

func TestLoad_Descricao(t *testing.T) {
	migrations, err := Load(fstest.MapFS{
		"V3__create_financial_accounts.sql": {Data: []byte("SELECT 1;")},
	})

	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, "create financial accounts", migrations[0].Description)
	assert.Equal(t, "V3__create_financial_accounts.sql", migrations[0].Filename)
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}

	pending := Pending(all, map[int]bool{1: true, 3: true})

	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)
	assert.Empty(t, Pending(all, map[int]bool{1: true, 2: true, 3: true}))
}

func TestEmbeddedMigrations(t *testing.T) {
	m, err := NewMigrator(nil)
	require.NoError(t, err)

	migrations, err := Load(m.fsys)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	for i, migration := range migrations {
		assert.Equal(t, i+1, migration.Version, "versões devem ser contíguas")
	}
}
