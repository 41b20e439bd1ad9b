package storage

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Dialect names.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// sqlitePragmas are applied by modernc.org/sqlite to every pooled connection.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Dialect describes how to reach one kind of store through database/sql.
type Dialect struct {
	Name   string // sqlite or postgres
	Driver string // registered database/sql driver name
	DSN    string // driver-specific data source name
	Path   string // database file, sqlite only
}

// ParseDatabaseURL selects the dialect for a database URL.
//
// sqlite URLs follow the SQLAlchemy convention: sqlite:///rel.db is relative
// to the working directory and sqlite:////abs/path.db is absolute. In-memory
// databases are rejected because every session pins its own pooled
// connection and would see a different database.
func ParseDatabaseURL(url string) (Dialect, error) {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		path := strings.TrimPrefix(url, "sqlite:///")
		if q := strings.IndexByte(path, '?'); q >= 0 {
			path = path[:q]
		}
		if path == "" || path == ":memory:" {
			return Dialect{}, fmt.Errorf("%w: sqlite url needs a database file: %q", ErrUnsupportedURL, url)
		}
		return Dialect{
			Name:   DialectSQLite,
			Driver: "sqlite",
			DSN:    filepath.Clean(path) + "?" + sqlitePragmas,
			Path:   path,
		}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Dialect{Name: DialectPostgres, Driver: "pgx", DSN: url}, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(url))
	}
}

// Rebind rewrites ? placeholders for the dialect. Question marks inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d.Name != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// redact drops credentials from a URL before it reaches an error or a log.
func redact(url string) string {
	scheme := strings.Index(url, "://")
	at := strings.LastIndexByte(url, '@')
	if scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
