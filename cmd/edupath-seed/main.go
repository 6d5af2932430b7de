// Command edupath-seed loads initial site content from a YAML file.
//
//	edupath-seed -file seed.yaml -dry-run
//	edupath-seed -file seed.yaml -mongo-uri mongodb://localhost:27017 -db edupath
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dalemusser/edupath/internal/app/seed"
	"github.com/dalemusser/edupath/internal/app/store/content"
	"github.com/dalemusser/edupath/internal/app/store/gateway"
	"github.com/dalemusser/edupath/internal/app/system/indexes"
	"github.com/dalemusser/edupath/internal/app/system/validators"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "edupath-seed:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func run() error {
	file := flag.String("file", "seed.yaml", "seed file to load")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	uri := flag.String("mongo-uri", envOr("EDUPATH_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	dbName := flag.String("db", envOr("EDUPATH_MONGO_DATABASE", "edupath"), "MongoDB database name")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall time limit")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	sf, err := seed.Parse(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	var src content.Source = content.Static(nil)
	if !*dryRun {
		if err := wafflemongo.ValidateURI(*uri); err != nil {
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		gw := gateway.New(gateway.Config{URI: *uri, Database: *dbName}, logger)
		defer func() { _ = gw.Disconnect(context.Background()) }()

		db, err := gw.Handle(ctx)
		if err != nil {
			return err
		}
		if err := validators.EnsureAll(ctx, db); err != nil {
			return err
		}
		if err := indexes.EnsureAll(ctx, db, logger); err != nil {
			return err
		}
		src = gw
	}

	rep, err := seed.New(src, logger).Run(ctx, sf, *dryRun)
	if err != nil {
		return err
	}
	for name, n := range rep.Loaded {
		logger.Info("loaded", zap.String("section", name), zap.Int("count", n))
	}
	if !rep.OK() {
		for _, fail := range rep.Failures {
			logger.Error("seed failure", zap.String("item", fmt.Sprintf("%s[%d]", fail.Section, fail.Index)), zap.Error(fail.Err))
		}
		return fmt.Errorf("%d item(s) failed", len(rep.Failures))
	}
	return nil
}
