package storage

import (
	"database/sql"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// FetchRecord is one completed fetch-and-normalize cycle.
type FetchRecord struct {
	Symbol       string
	Days         int
	BusinessDays bool
	Points       int
	LatestPrice  float64
	Currency     string
	FetchedAt    time.Time
}

type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS fetches(
		symbol TEXT, days INTEGER, business_days INTEGER,
		points INTEGER, latest_price REAL, currency TEXT, fetched_at INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

// RecordFetch appends a completed fetch to the history.
func (s *Store) RecordFetch(r *FetchRecord) error {
	business := 0
	if r.BusinessDays {
		business = 1
	}
	_, err := s.db.Exec(`INSERT INTO fetches(symbol,days,business_days,points,latest_price,currency,fetched_at)
		VALUES(?,?,?,?,?,?,?)`,
		r.Symbol, r.Days, business, r.Points, r.LatestPrice, r.Currency, r.FetchedAt.Unix())
	return err
}

// RecentFetches returns the most recent fetches, newest first.
func (s *Store) RecentFetches(limit int) ([]FetchRecord, error) {
	rows, err := s.db.Query(`SELECT symbol,days,business_days,points,latest_price,currency,fetched_at
		FROM fetches ORDER BY fetched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FetchRecord
	for rows.Next() {
		var r FetchRecord
		var business int
		var ts int64
		if err := rows.Scan(&r.Symbol, &r.Days, &business, &r.Points, &r.LatestPrice, &r.Currency, &ts); err != nil {
			return nil, err
		}
		r.BusinessDays = business != 0
		r.FetchedAt = time.Unix(ts, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}
