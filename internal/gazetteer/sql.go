package gazetteer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DefaultTable is the table read by SQLSource when none is configured.
const DefaultTable = "cities"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLSource reads cities from a table with columns
// name, country, lat, lon, tz, pop. Rows come back ordered by OrderBy when
// it is set, otherwise in the database's natural order.
type SQLSource struct {
	DB      *sql.DB
	Table   string
	OrderBy string // optional column to order by
}

// OpenDB opens and pings a database for use with SQLSource.
func OpenDB(driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("open gazetteer db: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	if driver == DriverSQLite {
		// every :memory: connection is a separate database
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open gazetteer db: verify connection: %w", err)
	}

	return db, nil
}

// Name implements Source.
func (s *SQLSource) Name() string { return "sql:" + s.table() }

func (s *SQLSource) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

func (s *SQLSource) query() (string, error) {
	table := s.table()
	if !tableName.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	q := "SELECT name, country, lat, lon, COALESCE(tz, ''), COALESCE(pop, 0) FROM " + table
	if s.OrderBy != "" {
		if !tableName.MatchString(s.OrderBy) {
			return "", fmt.Errorf("invalid order column %q", s.OrderBy)
		}
		q += " ORDER BY " + s.OrderBy
	}
	return q, nil
}

// Load implements Source.
func (s *SQLSource) Load(ctx context.Context) ([]City, error) {
	if s.DB == nil {
		return nil, errors.New("sql source: db is nil")
	}

	q, err := s.query()
	if err != nil {
		return nil, fmt.Errorf("sql source: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.Name, &c.Country, &c.Lat, &c.Lon, &c.TZ, &c.Pop); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return cities, nil
}
