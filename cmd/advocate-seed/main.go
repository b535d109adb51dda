package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/advocate-directory-api/internal/models"
	"github.com/noah-isme/advocate-directory-api/internal/repository"
	"github.com/noah-isme/advocate-directory-api/internal/service"
	"github.com/noah-isme/advocate-directory-api/pkg/cache"
	"github.com/noah-isme/advocate-directory-api/pkg/config"
	"github.com/noah-isme/advocate-directory-api/pkg/database"
	"github.com/noah-isme/advocate-directory-api/pkg/logger"
)

const seedTimeout = time.Minute

// Version is injected at build time.
var Version = "dev"

type seedOptions struct {
	file   string
	dryRun bool
}

func main() {
	if err := Execute(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

// Execute runs the seed command with args, writing the summary to out.
func Execute(args []string, out io.Writer) error {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:          "advocate-seed",
		Short:        "Replace the advocates table with seed data",
		Long:         "Loads advocates from the embedded seed data or a YAML file, validates them and replaces every row of the advocates table.",
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, out)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	registerFlags(cmd.Flags(), opts)
	cmd.SetArgs(args)

	return cmd.ExecuteContext(context.Background())
}

func registerFlags(flags *pflag.FlagSet, opts *seedOptions) {
	flags.StringVarP(&opts.file, "file", "f", "", "YAML seed file (defaults to the embedded data set, or SEED_FILE)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Validate the seed data without touching the database")
}

func run(ctx context.Context, opts *seedOptions, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	file := opts.file
	if file == "" {
		file = cfg.Advocates.SeedFile
	}

	advocates, err := repository.DecodeSeed(file)
	if err != nil {
		logr.Error("failed to load seed data", zap.String("file", file), zap.Error(err))
		return err
	}

	validate := models.NewValidator()
	if opts.dryRun {
		if err := service.NewSeedService(nil, nil, validate, logr).Validate(advocates); err != nil {
			logr.Error("seed data is invalid", zap.String("file", file), zap.Error(err))
			return err
		}
		fmt.Fprintf(out, "%d advocates valid, nothing written\n", len(advocates))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Error("failed to connect to postgres", zap.Error(err))
		return err
	}
	defer db.Close()

	var cacheSvc *service.CacheService
	if client, err := cache.NewRedis(ctx, cfg.Redis); err == nil {
		cacheRepo := repository.NewCacheRepository(client)
		defer cacheRepo.Close()
		cacheSvc = service.NewCacheService(cacheRepo, nil, cfg.Cache.TTL, logr, true)
	} else {
		logr.Info("redis unavailable, skipping cache invalidation", zap.Error(err))
	}

	seedSvc := service.NewSeedService(repository.NewAdvocateRepository(db), cacheSvc, validate, logr)
	inserted, err := seedSvc.Seed(ctx, advocates)
	if err != nil {
		logr.Error("error seeding database", zap.Error(err))
		return err
	}

	fmt.Fprintf(out, "Seeded %d advocates\n", inserted)
	return nil
}
