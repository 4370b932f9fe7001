package mocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Billy-Davies-2/tierboard/internal/dal"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
)

// MockPostgresDAL stands in for Postgres during local development by reading
// the same roster layout from a SQLite file.
type MockPostgresDAL struct {
	*dal.SQLiteDAL
}

// NewMockPostgresDAL creates a mock Postgres roster source backed by SQLite.
// A missing file is created and seeded with the default roster.
func NewMockPostgresDAL(sqliteFile string) (*MockPostgresDAL, error) {
	logger.Info("Using MOCK Postgres (SQLite) for local development", "file", sqliteFile)

	if _, err := os.Stat(sqliteFile); errors.Is(err, fs.ErrNotExist) {
		if err := seedDefaultRoster(sqliteFile); err != nil {
			return nil, fmt.Errorf("failed to seed mock postgres roster: %w", err)
		}
	}

	sqliteDAL, err := dal.NewSQLiteDAL(sqliteFile)
	if err != nil {
		return nil, err
	}

	return &MockPostgresDAL{SQLiteDAL: sqliteDAL}, nil
}

func (m *MockPostgresDAL) Name() string { return "postgres(mock)" }

func seedDefaultRoster(path string) error {
	players, err := dal.NewMemoryDAL().LoadPlayers(context.Background())
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(dal.SQLiteSchema); err != nil {
		return err
	}
	for i, p := range players {
		tiers, err := json.Marshal(p.Tiers)
		if err != nil {
			return err
		}
		if _, err := db.Exec(
			`INSERT INTO players (name, student_id, form, house, title, tiers, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.StudentID, p.Form, string(p.House), p.Title, string(tiers), i+1,
		); err != nil {
			return err
		}
	}

	logger.Info("Seeded mock postgres roster", "file", path, "player_count", len(players))
	return nil
}
