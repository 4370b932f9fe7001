package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// Schema is the table the client reads rosters from.
const Schema = `
CREATE TABLE IF NOT EXISTS players (
	name String,
	student_id String DEFAULT '',
	form String DEFAULT '',
	house String DEFAULT '',
	title String DEFAULT '',
	tiers Array(String),
	position UInt32 DEFAULT 0
) ENGINE = MergeTree ORDER BY (position, name)
`

const selectPlayers = `
	SELECT name, student_id, form, house, title, tiers
	FROM players
	ORDER BY position, name
`

// Client provides a read-only ClickHouse roster source
type Client struct {
	conn driver.Conn
}

// NewClient creates a new ClickHouse client
func NewClient(addr, database, username, password string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

// NewClientFromConn wraps an already opened connection.
func NewClientFromConn(conn driver.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Name() string { return "clickhouse" }

// LoadPlayers reads the full roster in position order
func (c *Client) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := c.conn.Query(ctx, selectPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var (
			p      models.Player
			house  string
			labels []string
		)
		if err := rows.Scan(&p.Name, &p.StudentID, &p.Form, &house, &p.Title, &labels); err != nil {
			return nil, err
		}
		p.House = models.House(house)
		p.Tiers = toLabels(labels)
		players = append(players, p)
	}

	return players, rows.Err()
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func toLabels(labels []string) []models.TierLabel {
	out := make([]models.TierLabel, len(labels))
	for i, l := range labels {
		out[i] = models.TierLabel(l)
	}
	return out
}
