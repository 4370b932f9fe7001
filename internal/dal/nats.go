package dal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// NATSDAL implements RosterSource by asking another service for the roster
// over NATS request/reply. The reply body is a JSON array of players.
type NATSDAL struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
	owned   bool
}

// NewNATSDAL connects to natsURL and requests rosters on subject
func NewNATSDAL(natsURL, subject string) (*NATSDAL, error) {
	nc, err := nats.Connect(natsURL, nats.Name("tierboard-roster"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	d := NewNATSDALFromConn(nc, subject)
	d.owned = true
	return d, nil
}

// NewNATSDALFromConn uses an existing connection. The caller keeps ownership.
func NewNATSDALFromConn(nc *nats.Conn, subject string) *NATSDAL {
	return &NATSDAL{
		nc:      nc,
		subject: subject,
		timeout: 5 * time.Second,
	}
}

func (n *NATSDAL) Name() string { return "nats:" + n.subject }

func (n *NATSDAL) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	msg, err := n.nc.RequestWithContext(ctx, n.subject, nil)
	if err != nil {
		return nil, fmt.Errorf("roster request on %s failed: %w", n.subject, err)
	}

	var players []models.Player
	if err := json.Unmarshal(msg.Data, &players); err != nil {
		return nil, fmt.Errorf("%w: undecodable roster reply: %v", ErrInvalidRoster, err)
	}
	return clonePlayers(players), nil
}

// Close drains the connection when this source opened it
func (n *NATSDAL) Close() {
	if n.owned && n.nc != nil {
		n.nc.Close()
	}
}

// RespondRoster answers roster requests on subject with the JSON encoding of
// whatever load returns at the time of the request.
func RespondRoster(nc *nats.Conn, subject string, load func() []models.Player) (*nats.Subscription, error) {
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		data, err := json.Marshal(load())
		if err != nil {
			logger.Error("Failed to marshal roster reply", "error", err, "subject", subject)
			return
		}
		if err := msg.Respond(data); err != nil {
			logger.Warn("Failed to respond to roster request", "error", err, "subject", subject)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	logger.Info("Answering roster requests over NATS", "subject", subject)
	return sub, nil
}
