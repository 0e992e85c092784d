package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/shop?sslmode=disable", driverURL("postgres://u:p@localhost:5432/shop?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/shop", driverURL("postgresql://u@db/shop"))
	assert.Equal(t, "pgx5://u@db/shop", driverURL("pgx5://u@db/shop"))
}

func TestEmbeddedFiles(t *testing.T) {
	entries, err := files.ReadDir("sql")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
