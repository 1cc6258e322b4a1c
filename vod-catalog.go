package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streamnest/vod-catalog/internal/catalog"
	"github.com/streamnest/vod-catalog/internal/config"
	"github.com/streamnest/vod-catalog/internal/db"
	"github.com/streamnest/vod-catalog/internal/migration"
	"github.com/streamnest/vod-catalog/internal/ratelimit"
	"github.com/streamnest/vod-catalog/internal/remote"
	"github.com/streamnest/vod-catalog/internal/schedule"
	"github.com/streamnest/vod-catalog/internal/selector"
	catalogsvc "github.com/streamnest/vod-catalog/internal/service/catalog"
	"github.com/streamnest/vod-catalog/internal/service/lists"
	"github.com/streamnest/vod-catalog/internal/service/player"
	"github.com/streamnest/vod-catalog/internal/session"
	"github.com/urfave/cli/v2"
	"go-micro.dev/v4"
	"go-micro.dev/v4/logger"

	// Plugins
	_ "github.com/go-micro/plugins/v4/registry/etcd"
)

var Version = "v0.0.0"

const serviceName = "vod-catalog"

// Handler names define the RPC endpoints: Catalog.Query, Player.Open, ...
type Catalog struct{ *catalogsvc.Service }
type Player struct{ *player.Service }
type Lists struct{ *lists.Service }

func main() {
	logger.Infof("%s %s", serviceName, Version)
	defer logger.Info("DONE.")

	useDebug := false

	service := micro.NewService(
		micro.Name(serviceName),
		micro.Version(Version),
		micro.Flags(
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"debug"},
				Usage:       "debug log level",
				Value:       false,
				Destination: &useDebug,
			},
		),
	)

	service.Init(
		micro.Action(func(context *cli.Context) error {
			configFile := fmt.Sprintf("/etc/streamnest/%s.json", serviceName)
			if context.IsSet("config") {
				configFile = context.String("config")
			}
			return config.Load(configFile)
		}),
	)

	if useDebug {
		_ = logger.Init(logger.WithLevel(logger.DebugLevel))
	}

	cfg := config.Config()

	database, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Fatalf("Connect to database failed: %s", err)
	}
	logger.Info("Connected to database")

	m := migration.Migrator{Database: database}
	if err = m.Run(context.Background()); err != nil {
		logger.Fatalf("Migration failed: %s", err)
	}

	var fetcher catalog.Fetcher = remote.NewClient(cfg.Remote)
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		ttl := time.Duration(cfg.Redis.CacheTTLMin) * time.Minute
		fetcher = remote.NewCachedClient(fetcher, rdb, ttl)
		logger.Info("Collection cache enabled")
	}

	catalogManager := catalog.NewManager(fetcher)
	if _, err = catalogManager.Refresh(context.Background()); err != nil {
		// served from an empty snapshot until the refresh loop succeeds
		logger.Warnf("Initial catalog refresh failed: %s", err)
	}

	sched := schedule.New()
	defer sched.Stop()

	refreshInterval := time.Duration(cfg.Catalog.RefreshIntervalMin) * time.Minute
	sched.Every("catalog-refresh", refreshInterval, func(ctx context.Context) {
		if _, err := catalogManager.Refresh(ctx); err != nil {
			logger.Warnf("Refresh catalog failed: %s", err)
		}
	})

	sessionManager := session.NewManager(session.Settings{
		Catalog:   catalogManager,
		Database:  database,
		Scheduler: sched,
		Selector:  selector.SourceSelector{QualityPrior: cfg.Catalog.QualityPriority},
	})

	catalogService := &Catalog{&catalogsvc.Service{
		Catalog:        catalogManager,
		Database:       database,
		RefreshLimiter: ratelimit.NewInterval(30 * time.Second),
	}}
	playerService := &Player{&player.Service{Sessions: sessionManager, Catalog: catalogManager, Database: database}}
	listsService := &Lists{&lists.Service{Database: database}}

	if err = micro.RegisterHandler(service.Server(), catalogService); err != nil {
		logger.Fatalf("Register catalog service failed: %s", err)
	}
	if err = micro.RegisterHandler(service.Server(), playerService); err != nil {
		logger.Fatalf("Register player service failed: %s", err)
	}
	if err = micro.RegisterHandler(service.Server(), listsService); err != nil {
		logger.Fatalf("Register lists service failed: %s", err)
	}

	if err = service.Run(); err != nil {
		logger.Fatalf("Run service failed: %s", err)
	}
}
