package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"

	"github.com/Billy-Davies-2/tierboard/internal/board"
	"github.com/Billy-Davies-2/tierboard/internal/clickhouse"
	"github.com/Billy-Davies-2/tierboard/internal/config"
	"github.com/Billy-Davies-2/tierboard/internal/dal"
	grpcserver "github.com/Billy-Davies-2/tierboard/internal/grpc"
	"github.com/Billy-Davies-2/tierboard/internal/handlers"
	"github.com/Billy-Davies-2/tierboard/internal/logger"
	"github.com/Billy-Davies-2/tierboard/internal/metrics"
	"github.com/Billy-Davies-2/tierboard/internal/mocks"
	"github.com/Billy-Davies-2/tierboard/internal/models"
	"github.com/Billy-Davies-2/tierboard/internal/ranking"
	"github.com/Billy-Davies-2/tierboard/internal/render"
	"github.com/Billy-Davies-2/tierboard/internal/termview"
)

func main() {
	// Initialize logger first; config.Load re-reads LOG_* once .env is loaded
	logger.Init()

	if err := newApp().Run(os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tierboard",
		Usage: "player leaderboard with per-category tier lists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "roster-source",
				Usage: "memory, file, sqlite, postgres, clickhouse or nats (overrides ROSTER_SOURCE)",
			},
		},
		Commands: []*cli.Command{
			commandServe(),
			commandBuild(),
			commandTable(),
		},
	}
}

func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	if c.IsSet("roster-source") {
		cfg.RosterSource = c.String("roster-source")
	}
	return cfg
}

// openSource picks the roster source named by cfg. The returned close func is
// always safe to call.
func openSource(cfg *config.Config) (dal.RosterSource, func(), error) {
	noop := func() {}

	switch cfg.RosterSource {
	case "memory":
		logger.Info("Using in-memory roster")
		return dal.NewMemoryDAL(), noop, nil

	case "file":
		src, err := dal.NewFileDAL(cfg.RosterFile)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using roster file", "file", cfg.RosterFile)
		return src, noop, nil

	case "sqlite":
		src, err := dal.NewSQLiteDAL(cfg.SQLiteFile)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		logger.Info("Connected to SQLite database", "file", cfg.SQLiteFile)
		return src, func() { src.Close() }, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			if !cfg.IsDevelopment() {
				return nil, noop, errors.New("DATABASE_URL environment variable is required for postgres source")
			}
			src, err := mocks.NewMockPostgresDAL(cfg.SQLiteFile)
			if err != nil {
				return nil, noop, err
			}
			return src, func() { src.Close() }, nil
		}
		src, err := dal.NewPostgresDAL(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		logger.Info("Connected to Postgres database")
		return src, func() { src.Close() }, nil

	case "clickhouse":
		src, err := clickhouse.NewClient(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePassword)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Connected to ClickHouse", "address", cfg.ClickHouseAddr, "database", cfg.ClickHouseDB)
		return src, func() { src.Close() }, nil

	case "nats":
		natsURL := cfg.NATSURL
		var embedded *mocks.EmbeddedRoster
		if cfg.IsDevelopment() {
			logger.Info("Starting embedded NATS server for local development")
			defaults := dal.NewMemoryDAL()
			var err error
			embedded, err = mocks.NewEmbeddedRoster(cfg.NATSSubject, func() []models.Player {
				players, _ := defaults.LoadPlayers(context.Background())
				return players
			})
			if err != nil {
				return nil, noop, err
			}
			natsURL = embedded.URL()
		}

		src, err := dal.NewNATSDAL(natsURL, cfg.NATSSubject)
		if err != nil {
			if embedded != nil {
				embedded.Close()
			}
			return nil, noop, err
		}
		logger.Info("Using NATS roster source", "url", natsURL, "subject", cfg.NATSSubject)
		return src, func() {
			src.Close()
			if embedded != nil {
				embedded.Close()
			}
		}, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q (valid: memory, file, sqlite, postgres, clickhouse, nats)", dal.ErrUnknownSource, cfg.RosterSource)
	}
}

// loadBoard opens the configured source and performs the first load.
func loadBoard(ctx context.Context, cfg *config.Config, opts ...board.Option) (*board.Board, func(), error) {
	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return nil, closeSrc, err
	}
	b := board.New(src, opts...)
	return b, closeSrc, b.Reload(ctx)
}

func commandServe() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the leaderboard over HTTP and gRPC",
		Action: func(c *cli.Context) error {
			cfg := loadConfig(c)
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting tierboard", "environment", cfg.Environment, "roster_source", cfg.RosterSource)

			m := metrics.New()
			b, closeSrc, err := loadBoard(ctx, cfg, board.WithMetrics(m))
			defer closeSrc()
			if b == nil {
				return err
			}
			if err != nil {
				// Serve anyway; /readyz stays 503 until a reload succeeds.
				logger.Error("Initial roster load failed", "error", err)
			}

			if cfg.ReloadInterval > 0 {
				logger.Info("Periodic reload enabled", "interval", cfg.ReloadInterval.String())
				go b.Watch(ctx, cfg.ReloadInterval)
			}

			if cfg.NATSServeSubject != "" {
				closeResponder, err := serveRosterOverNATS(cfg, b)
				if err != nil {
					return err
				}
				defer closeResponder()
			}

			renderer, err := render.New()
			if err != nil {
				return err
			}

			errCh := make(chan error, 2)

			var grpcServer *grpc.Server
			if cfg.GRPCPort != "" {
				lis, err := net.Listen("tcp", "0.0.0.0:"+cfg.GRPCPort)
				if err != nil {
					return fmt.Errorf("failed to listen for gRPC: %w", err)
				}
				grpcServer = grpc.NewServer()
				grpcserver.Register(grpcServer, grpcserver.NewServer(b))

				go func() {
					logger.Info("gRPC server starting", "address", lis.Addr().String())
					if err := grpcServer.Serve(lis); err != nil {
						errCh <- fmt.Errorf("gRPC server: %w", err)
					}
				}()
			}

			srv := &http.Server{
				Addr:              "0.0.0.0:" + cfg.Port,
				Handler:           handlers.NewRouter(handlers.New(b, renderer), m),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				logger.Info("Server starting", "address", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- fmt.Errorf("HTTP server: %w", err)
				}
			}()

			var serveErr error
			select {
			case <-ctx.Done():
				logger.Info("Shutting down")
			case serveErr = <-errCh:
				logger.Error("Server failed", "error", serveErr)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP shutdown failed", "error", err)
			}
			if grpcServer != nil {
				grpcServer.GracefulStop()
			}

			logger.Info("Shutdown complete")
			return serveErr
		},
	}
}

// serveRosterOverNATS answers roster requests with the current leaderboard so
// other instances can use this one as their nats source.
func serveRosterOverNATS(cfg *config.Config, b *board.Board) (func(), error) {
	nc, err := nats.Connect(cfg.NATSURL, nats.Name("tierboard-roster"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	sub, err := dal.RespondRoster(nc, cfg.NATSServeSubject, b.Leaderboard)
	if err != nil {
		nc.Close()
		return nil, err
	}
	logger.Info("Serving roster over NATS", "url", cfg.NATSURL, "subject", cfg.NATSServeSubject)

	return func() {
		sub.Unsubscribe()
		nc.Close()
	}, nil
}

func commandBuild() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "write the leaderboard as a static site",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: "dist",
				Usage: "output directory",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := loadConfig(c)

			b, closeSrc, err := loadBoard(c.Context, cfg)
			defer closeSrc()
			if err != nil {
				return err
			}

			renderer, err := render.New()
			if err != nil {
				return err
			}
			return renderer.Build(c.String("out"), b)
		},
	}
}

func commandTable() *cli.Command {
	return &cli.Command{
		Name:  "table",
		Usage: "print the leaderboard, or one category's tier list, to the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "print the tier list for this category instead of the overall ranking",
			},
		},
		Action: func(c *cli.Context) error {
			category := models.Category(c.String("category"))
			if category != "" && ranking.CategoryIndex(category) < 0 {
				return fmt.Errorf("unknown category %q (valid: %s)", category, categoryList())
			}

			cfg := loadConfig(c)
			b, closeSrc, err := loadBoard(c.Context, cfg)
			defer closeSrc()
			if err != nil {
				return err
			}

			if category == "" {
				fmt.Fprint(c.App.Writer, termview.RenderLeaderboard(b.Leaderboard()))
				return nil
			}
			fmt.Fprint(c.App.Writer, termview.RenderTierList(b.TierList(category)))
			return nil
		},
	}
}

func categoryList() string {
	names := make([]string, len(ranking.Categories))
	for i, c := range ranking.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
