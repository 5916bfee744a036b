package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	pg := &DB{dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a=$1 AND b=$2", pg.rebind("SELECT * FROM t WHERE a=? AND b=?"))

	lite := &DB{dialect: DialectSQLite}
	assert.Equal(t, "a=? AND b=?", lite.rebind("a=? AND b=?"))
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open("mysql", "")
	assert.Error(t, err)
}

func TestOpen_PostgresRequiresDSN(t *testing.T) {
	_, err := Open(DialectPostgres, " ")
	assert.Error(t, err)
}
