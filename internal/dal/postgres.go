package dal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// PostgresSchema is the table layout PostgresDAL reads from.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS players (
	name TEXT PRIMARY KEY,
	student_id TEXT NOT NULL DEFAULT '',
	form TEXT NOT NULL DEFAULT '',
	house TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	tiers TEXT[] NOT NULL DEFAULT '{}',
	position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_players_position ON players(position);
`

// PostgresDAL implements RosterSource using PostgreSQL. It never writes.
type PostgresDAL struct {
	db *sql.DB
}

// NewPostgresDAL creates a PostgreSQL roster source optimized for CloudNativePG
func NewPostgresDAL(connString string) (*PostgresDAL, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// A roster read is one small query; keep the pool small and recycle
	// connections so failovers are picked up.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Retry the first ping to ride out Kubernetes DNS propagation
	maxRetries := 5
	retryDelay := 5 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		lastErr = db.PingContext(ctx)
		cancel()

		if lastErr == nil {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if lastErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", maxRetries, lastErr)
	}

	return &PostgresDAL{db: db}, nil
}

// NewPostgresDALFromDB wraps an existing handle without pinging it.
func NewPostgresDALFromDB(db *sql.DB) *PostgresDAL {
	return &PostgresDAL{db: db}
}

func (p *PostgresDAL) Name() string { return "postgres" }

func (p *PostgresDAL) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := p.db.QueryContext(ctx, `
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
		var house string
		var labels []string
		if err := rows.Scan(&p.Name, &p.StudentID, &p.Form, &house, &p.Title, pq.Array(&labels)); err != nil {
			return nil, err
		}
		p.House = models.House(house)
		p.Tiers = make([]models.TierLabel, len(labels))
		for i, l := range labels {
			p.Tiers[i] = models.TierLabel(l)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

// Close closes the connection pool
func (p *PostgresDAL) Close() error {
	return p.db.Close()
}
