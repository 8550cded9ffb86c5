// Package main is the entry point for the crab generator.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/creatura/internal/assets"
	"github.com/Faultbox/creatura/internal/colony"
	"github.com/Faultbox/creatura/internal/config"
	"github.com/Faultbox/creatura/internal/creature"
	"github.com/Faultbox/creatura/internal/export"
	"github.com/Faultbox/creatura/internal/logger"
	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/preview"
	"github.com/Faultbox/creatura/internal/scene"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Creatura crab generator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	shaders := material.NewStandardShaders()

	var mgr *assets.Manager
	var err error
	if cfg.Assets.Manifest != "" {
		mgr, err = assets.LoadManifest(cfg.Assets.Manifest, shaders)
	} else {
		mgr, err = assets.Builtin(shaders)
	}
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}

	composer, err := creature.New(mgr,
		creature.WithShaders(shaders),
		creature.WithRanges(cfg.Body),
		creature.WithResolution(cfg.Generation.Resolution))
	if err != nil {
		return fmt.Errorf("creating composer: %w", err)
	}

	root := scene.NewNode("Creatura")
	col, genErr := colony.Generate(root, composer, colony.Layout{
		Count:    cfg.Generation.Count,
		Spacing:  cfg.Generation.Spacing,
		BaseSeed: cfg.Generation.Seed,
		Workers:  cfg.Generation.Workers,
	})
	if col == nil {
		return genErr
	}
	if genErr != nil {
		// Partial colonies are still written out.
		logger.Warn("some creatures failed", zap.Error(genErr))
		if len(col.Generated()) == 0 && cfg.Generation.Count > 0 {
			return genErr
		}
	}

	out := cfg.Output
	if out.OBJ {
		host := &export.OBJHost{Dir: out.Dir, Base: "colony"}
		if err := host.Instantiate(root); err != nil {
			return err
		}
	}
	if out.Manifest {
		m := export.NewManifest(col, composer.Resolution())
		if err := export.WriteManifestFile(filepath.Join(out.Dir, "colony.yaml"), m); err != nil {
			return err
		}
	}
	if out.Preview {
		host := &preview.Host{
			Path: filepath.Join(out.Dir, "preview.webp"),
			Options: preview.Options{
				Size:        out.PreviewSize,
				Supersample: out.Supersample,
				Yaw:         preview.DefaultOptions().Yaw,
				Pitch:       preview.DefaultOptions().Pitch,
			},
		}
		if err := host.Instantiate(root); err != nil {
			return err
		}
	}

	logger.Info("done",
		zap.Int("crabs", len(col.Generated())),
		zap.Int("nodes", root.Count()),
		zap.String("output", out.Dir))
	return nil
}
