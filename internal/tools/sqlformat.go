package tools

import (
	"regexp"
	"strings"
)

// clauseBreak matches the keywords that start a new line. Multi-word join
// variants come first so the alternation consumes them as a unit.
var clauseBreak = regexp.MustCompile(`(?i)\b(LEFT OUTER JOIN|RIGHT OUTER JOIN|FULL OUTER JOIN|INNER JOIN|LEFT JOIN|RIGHT JOIN|FULL JOIN|CROSS JOIN|JOIN|ORDER BY|GROUP BY|SELECT|FROM|WHERE|HAVING)\b`)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	commaBreak    = regexp.MustCompile(`,[ \t]*\n[ \t]*`)
)

var mainClauses = []string{
	"SELECT", "FROM", "WHERE", "ORDER BY", "GROUP BY", "HAVING",
	"INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER",
}

var joinClauses = []string{
	"LEFT OUTER JOIN", "RIGHT OUTER JOIN", "FULL OUTER JOIN",
	"INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL JOIN", "CROSS JOIN", "JOIN",
}

var conjunctions = []string{"AND", "OR"}

// FormatSQL reflows a single query onto one clause per line. It is a lexical
// pass, not a parser: keywords inside string literals, comments or subqueries
// are broken out like any other occurrence.
func FormatSQL(query string) string {
	collapsed := strings.TrimSpace(whitespaceRun.ReplaceAllString(query, " "))
	if collapsed == "" {
		return ""
	}

	broken := clauseBreak.ReplaceAllString(collapsed, "\n$1")

	var out []string
	for _, line := range strings.Split(broken, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, indentFor(line)+line)
	}

	return commaBreak.ReplaceAllString(strings.Join(out, "\n"), ",\n  ")
}

func indentFor(line string) string {
	upper := strings.ToUpper(line)
	switch {
	case startsWithKeyword(upper, mainClauses):
		return ""
	case startsWithKeyword(upper, joinClauses):
		return "  "
	case startsWithKeyword(upper, conjunctions):
		return "    "
	default:
		return "  "
	}
}

// startsWithKeyword reports whether upper begins with one of keywords as a
// whole word.
func startsWithKeyword(upper string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.HasPrefix(upper, kw) {
			continue
		}
		if len(upper) == len(kw) || !isWordByte(upper[len(kw)]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
