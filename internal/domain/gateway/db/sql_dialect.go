package db

import (
	"strconv"
	"strings"
)

// Dialect selects the SQL flavour spoken by the database/sql gateway
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a driver name to a Dialect, defaulting to Postgres
func ParseDialect(driver string) Dialect {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return SQLite
	default:
		return Postgres
	}
}

// Rebind rewrites ? placeholders to $1, $2... for Postgres
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// prefixMatch is the case-insensitive "name starts with" predicate
func (d Dialect) prefixMatch() string {
	if d == Postgres {
		return `name ILIKE ? ESCAPE '\'`
	}
	return `name LIKE ? ESCAPE '\'`
}

// orderByName sorts case-insensitively with id as tie-breaker
func (d Dialect) orderByName() string {
	if d == Postgres {
		return "ORDER BY LOWER(name) ASC, id ASC"
	}
	return "ORDER BY name COLLATE NOCASE ASC, id ASC"
}

// escapeLike makes %, _ and \ match literally inside a LIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
