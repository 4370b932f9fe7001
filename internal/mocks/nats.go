package mocks

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/Billy-Davies-2/tierboard/internal/dal"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/models"
)

// EmbeddedRoster runs an in-process NATS server with a responder that
// answers roster requests, so the nats source works with no infrastructure.
type EmbeddedRoster struct {
	server *server.Server
	nc     *nats.Conn
	sub    *nats.Subscription
}

// NewEmbeddedRoster starts the server and serves load() on subject.
func NewEmbeddedRoster(subject string, load func() []models.Player) (*EmbeddedRoster, error) {
	ns, err := server.NewServer(&server.Options{
		Port:   -1, // random available port
		NoSigs: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedded NATS server: %w", err)
	}
	ns.SetLogger(&natsLogger{}, false, false)

	go ns.Start()

	if !ns.ReadyForConnections(10 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("embedded NATS server failed to start within timeout")
	}

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("failed to connect to embedded NATS: %w", err)
	}

	sub, err := dal.RespondRoster(nc, subject, load)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, err
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, err
	}

	logger.Info("Embedded NATS roster responder started", "url", ns.ClientURL(), "subject", subject)

	return &EmbeddedRoster{server: ns, nc: nc, sub: sub}, nil
}

// URL returns the client URL of the embedded server
func (e *EmbeddedRoster) URL() string {
	return e.server.ClientURL()
}

// Close stops the responder and shuts the server down
func (e *EmbeddedRoster) Close() {
	if e.sub != nil {
		e.sub.Unsubscribe()
	}
	if e.nc != nil {
		e.nc.Close()
	}
	if e.server != nil {
		e.server.Shutdown()
		e.server.WaitForShutdown()
	}
	logger.Info("Embedded NATS server shut down")
}

// natsLogger adapts our logger to the NATS server logger interface
type natsLogger struct{}

func (l *natsLogger) Noticef(format string, v ...any) {
	logger.Info(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Warnf(format string, v ...any) {
	logger.Warn(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Fatalf(format string, v ...any) {
	logger.Error(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Errorf(format string, v ...any) {
	logger.Error(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Debugf(format string, v ...any) {
	logger.Debug(fmt.Sprintf("[NATS] "+format, v...))
}

func (l *natsLogger) Tracef(format string, v ...any) {
	logger.Debug(fmt.Sprintf("[NATS TRACE] "+format, v...))
}
