package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fcrepo-go/ldprepo/common"
	"github.com/fcrepo-go/ldprepo/common/mmongo"
	"github.com/fcrepo-go/ldprepo/common/mopentelemetry"
	"github.com/fcrepo-go/ldprepo/common/mpostgres"
	"github.com/fcrepo-go/ldprepo/common/mrabbitmq"
	"github.com/fcrepo-go/ldprepo/common/mredis"
	"github.com/fcrepo-go/ldprepo/common/mzap"
	httpAdapter "github.com/fcrepo-go/ldprepo/internal/adapters/http"
	"github.com/fcrepo-go/ldprepo/internal/engine"
	"github.com/fcrepo-go/ldprepo/internal/event"
	"github.com/fcrepo-go/ldprepo/internal/rcl"
	"github.com/fcrepo-go/ldprepo/internal/service"
	"github.com/fcrepo-go/ldprepo/internal/tbx"
	"github.com/fcrepo-go/ldprepo/internal/tsa/postgres"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// @title			LDP Repository API
// @version		v1.0.0
// @description	HTTP surface for a Linked Data Platform repository server.
// @termsOfService	http://swagger.io/terms/
// @license.name	Apache 2.0
// @license.url	http://www.apache.org/licenses/LICENSE-2.0.html
// @host			localhost:3000
// @BasePath		/
func main() {
	common.InitLocalEnvConfig()

	cfg := service.NewConfig()

	logger := mzap.InitializeLogger()

	tl := (&mopentelemetry.Telemetry{
		LibraryName:               cfg.OtelLibraryName,
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            cfg.OtelServiceVersion,
		DeploymentEnv:             cfg.OtelDeploymentEnv,
		CollectorExporterEndpoint: cfg.OtelColExporterEndpoint,
	}).InitializeTelemetry()
	defer tl.ShutdownTelemetry()

	pg := &mpostgres.PostgresConnection{
		ConnectionStringPrimary: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.PrimaryDBHost, cfg.PrimaryDBUser, cfg.PrimaryDBPassword, cfg.PrimaryDBName, cfg.PrimaryDBPort),
		ConnectionStringReplica: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.ReplicaDBHost, cfg.ReplicaDBUser, cfg.ReplicaDBPassword, cfg.ReplicaDBName, cfg.ReplicaDBPort),
		PrimaryDBName: cfg.PrimaryDBName,
		ReplicaDBName: cfg.ReplicaDBName,
	}

	store := postgres.NewRepository(pg)

	redisConn := &mredis.RedisConnection{
		ConnectionStringSource: fmt.Sprintf("redis://%s:%s", cfg.RedisHost, cfg.RedisPort),
		Logger:                 logger,
	}
	cache := rcl.NewRedisExistenceCache(redisConn)

	tb := tbx.New(cfg.WebRoot)

	var publisher txn.Publisher
	if cfg.Messaging {
		rmq := &mrabbitmq.RabbitMQConnection{
			ConnectionStringSource: fmt.Sprintf("amqp://%s:%s@%s:%s", cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPortAMQP),
			Logger:                 logger,
		}

		emitter := event.NewEmitter(rmq, logger)
		if err := emitter.EnsureExchange(context.Background()); err != nil {
			logger.Errorf("failed to declare events exchange: %v", err)
		}

		publisher = emitter
	}

	var archiver txn.Archiver
	if cfg.Archiving {
		mongoConn := &mmongo.MongoConnection{
			ConnectionStringSource: fmt.Sprintf("mongodb://%s:%s@%s:%s", cfg.MongoDBUser, cfg.MongoDBPassword, cfg.MongoDBHost, cfg.MongoDBPort),
			Database:               cfg.MongoDBName,
		}
		archiver = txn.NewMongoArchiver(mongoConn, cfg.MongoDBName)
	}

	txm := txn.NewManager(store, publisher, archiver, logger)

	uc := engine.New(store, tb, cache, txm, logger, engine.Config{
		ReferentialIntegrity:  engine.RefIntegrity(cfg.ReferentialIntegrity),
		Messaging:             cfg.Messaging,
		WebRoot:               cfg.WebRoot,
		DefaultUser:           cfg.DefaultUser,
		AskRsrcExistsCacheTTL: 5 * time.Minute,
	})

	if err := uc.Bootstrap(context.Background()); err != nil {
		logger.Errorf("failed to bootstrap repository root: %v", err)
	}

	app := httpAdapter.NewRouter(logger, uc, cfg.OtelServiceName)

	server := service.NewServer(cfg, app, logger)

	common.NewLauncher(
		common.WithLogger(logger),
		common.RunApp("ldp-repo", server),
	).Run()
}
