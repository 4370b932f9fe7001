package dal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// SQLiteSchema is the table layout SQLiteDAL reads from. tiers holds a JSON
// array of labels; position fixes the input order used for tie-breaking.
// Rows sharing a position fall back to name order, as in every SQL source.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS players (
	name TEXT PRIMARY KEY,
	student_id TEXT NOT NULL DEFAULT '',
	form TEXT NOT NULL DEFAULT '',
	house TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	tiers TEXT NOT NULL DEFAULT '[]',
	position INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteDAL implements RosterSource using SQLite. It never writes.
type SQLiteDAL struct {
	db *sql.DB
}

// NewSQLiteDAL opens the database at dbPath read-only
func NewSQLiteDAL(dbPath string) (*SQLiteDAL, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite roster %s: %w", dbPath, err)
	}

	return &SQLiteDAL{db: db}, nil
}

func (s *SQLiteDAL) Name() string { return "sqlite" }

func (s *SQLiteDAL) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, student_id, form, house, title, tiers
		FROM players
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		var house, tiersJSON string
		if err := rows.Scan(&p.Name, &p.StudentID, &p.Form, &house, &p.Title, &tiersJSON); err != nil {
			return nil, err
		}
		p.House = models.House(house)
		if err := json.Unmarshal([]byte(tiersJSON), &p.Tiers); err != nil {
			return nil, fmt.Errorf("%w: bad tiers for %q: %v", ErrInvalidRoster, p.Name, err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

// Close closes the database handle
func (s *SQLiteDAL) Close() error {
	return s.db.Close()
}
