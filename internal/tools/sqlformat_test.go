package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSQL_ClauseLayout(t *testing.T) {
	in := "SELECT u.id, u.name FROM users u JOIN posts p ON u.id = p.user_id WHERE u.active = true ORDER BY u.name"
	want := strings.Join([]string{
		"SELECT u.id, u.name",
		"FROM users u",
		"  JOIN posts p ON u.id = p.user_id",
		"WHERE u.active = true",
		"ORDER BY u.name",
	}, "\n")

	assert.Equal(t, want, FormatSQL(in))
}

func TestFormatSQL_CollapsesWhitespace(t *testing.T) {
	in := "  select *\n\tfrom   orders\n\n where id = 1  "
	assert.Equal(t, "select *\nfrom orders\nwhere id = 1", FormatSQL(in))
}

func TestFormatSQL_JoinVariantsStayWhole(t *testing.T) {
	in := "SELECT a.x FROM a LEFT OUTER JOIN b ON a.id = b.id inner join c ON c.id = b.id GROUP BY a.x HAVING count(*) > 1"
	got := strings.Split(FormatSQL(in), "\n")

	assert.Equal(t, []string{
		"SELECT a.x",
		"FROM a",
		"  LEFT OUTER JOIN b ON a.id = b.id",
		"  inner join c ON c.id = b.id",
		"GROUP BY a.x",
		"HAVING count(*) > 1",
	}, got)
}

func TestFormatSQL_WholeWordsOnly(t *testing.T) {
	got := FormatSQL("SELECT selected, fromage FROM wherehouse")
	assert.Equal(t, "SELECT selected, fromage\nFROM wherehouse", got)
}

func TestFormatSQL_NonClauseLeadIsIndented(t *testing.T) {
	got := FormatSQL("WITH t AS (SELECT 1) SELECT * FROM t")
	assert.Equal(t, "  WITH t AS (\nSELECT 1)\nSELECT *\nFROM t", got)
}

func TestFormatSQL_TrailingCommaBeforeClause(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT a,FROM t", "SELECT a,\n  FROM t"},
		{"select a, b,  from t where x = 1", "select a, b,\n  from t\nwhere x = 1"},
		{"SELECT a,\n\tFROM t", "SELECT a,\n  FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSQL(tt.in))
		})
	}
}

func TestFormatSQL_Empty(t *testing.T) {
	assert.Equal(t, "", FormatSQL(""))
	assert.Equal(t, "", FormatSQL(" \n\t "))
}

func TestIndentFor(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"UPDATE users SET a = 1", ""},
		{"insert into t values (1)", ""},
		{"CROSS JOIN t", "  "},
		{"AND x = 1", "    "},
		{"or y = 2", "    "},
		{"ORDERS", "  "},
		{"LIMIT 10", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, indentFor(tt.line))
		})
	}
}
