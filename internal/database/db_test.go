package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/energo?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		DSN("app", "secret", "db", "3306", "energo"))
	assert.Equal(t,
		"root@tcp(localhost:3306)/energo?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		DSN("root", "", "localhost", "3306", "energo"))
}
