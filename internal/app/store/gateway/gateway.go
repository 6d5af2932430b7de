// internal/app/store/gateway/gateway.go
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNoURI is returned by Handle when no connection string was configured.
var ErrNoURI = errors.New("gateway: mongo URI is not configured")

// ErrNoDatabase is returned by Handle when no database name was configured.
var ErrNoDatabase = errors.New("gateway: mongo database name is not configured")

// Config describes how to reach the document store.
type Config struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
}

// Gateway owns the process-wide Mongo client. The first call to Handle
// connects and pings; every later call returns the same database handle.
// A failed connect is not cached, so the next call tries again.
type Gateway struct {
	cfg Config
	log *zap.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// New records cfg without connecting.
func New(cfg Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return &Gateway{cfg: cfg, log: logger}
}

// Handle returns the shared database handle, connecting on first use.
// Concurrent first callers block on the same connect.
func (g *Gateway) Handle(ctx context.Context) (*mongo.Database, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}
	if strings.TrimSpace(g.cfg.URI) == "" {
		return nil, ErrNoURI
	}
	if strings.TrimSpace(g.cfg.Database) == "" {
		return nil, ErrNoDatabase
	}

	cctx, cancel := context.WithTimeout(ctx, g.cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(g.cfg.URI)
	if g.cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(g.cfg.MaxPoolSize)
	}
	if g.cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(g.cfg.MinPoolSize)
	}

	client, err := mongo.Connect(cctx, opts)
	if err != nil {
		return nil, fmt.Errorf("gateway: connect: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("gateway: ping: %w", err)
	}

	g.client = client
	g.db = client.Database(g.cfg.Database)
	g.log.Info("connected to MongoDB",
		zap.String("database", g.cfg.Database),
		zap.Uint64("max_pool", g.cfg.MaxPoolSize),
		zap.Uint64("min_pool", g.cfg.MinPoolSize))
	return g.db, nil
}

// Client returns the connected client, or nil before the first Handle.
func (g *Gateway) Client() *mongo.Client {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client
}

// Ping checks the live connection, connecting first if needed.
func (g *Gateway) Ping(ctx context.Context) error {
	db, err := g.Handle(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Disconnect closes the client. It is safe to call when never connected.
func (g *Gateway) Disconnect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Disconnect(ctx)
	g.client, g.db = nil, nil
	return err
}
