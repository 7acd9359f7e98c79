package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	v1Grpc "github.com/Maria-Yarosh/shop.project.SF/internal/delivery/v1/grpc"
	v1Http "github.com/Maria-Yarosh/shop.project.SF/internal/delivery/v1/http"
	"github.com/Maria-Yarosh/shop.project.SF/internal/infrastructure/kafka"
	minioInfra "github.com/Maria-Yarosh/shop.project.SF/internal/infrastructure/minio"
	s3Repo "github.com/Maria-Yarosh/shop.project.SF/internal/repository/minio"
	"github.com/Maria-Yarosh/shop.project.SF/internal/repository/pgdb"
	pgdbConv "github.com/Maria-Yarosh/shop.project.SF/internal/repository/pgdb/converter"
	"github.com/Maria-Yarosh/shop.project.SF/internal/repository/redis"
	redisConv "github.com/Maria-Yarosh/shop.project.SF/internal/repository/redis/converter"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/closer"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/clients"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	initTimeout            = 10 * time.Second
	topicTimeout           = 10 * time.Second
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}

	if err := a.init(); err != nil {
		// то, что уже успели открыть, закрываем
		_ = a.closer.Close(context.Background())
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	db, err := initPGDB(a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.AddFunc("postgres", db.Close)

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{})
	commentRepo := pgdb.NewCommentRepo(db.Pool)
	imageRepo := pgdb.NewImageRepo(db.Pool)
	similarityRepo := pgdb.NewSimilarityRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{})
	txRunner := usecase.NewPgTxRunner(db.Pool)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		_ = redisClient.Close()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConverter{}, a.cfg.Redis, a.logger)

	// shutdownCtx прерывает фоновую очистку MinIO, если она не успела к остановке
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	a.closer.AddFunc("minio context", shutdownCancel)

	// Без MinIO загрузка файлов отключена, URL изображений принимаются как есть
	var imagesInfra usecase.ImagesInfra
	if a.cfg.Minio != nil {
		infra, err := a.initMinio(shutdownCtx)
		if err != nil {
			return err
		}
		imagesInfra = infra
	} else {
		a.logger.Warnf("MinIO is not configured, image uploads are disabled")
	}

	if a.cfg.Kafka != nil {
		if err := a.initKafka(outboxRepo, postgres.DSN(a.cfg.Db)); err != nil {
			return err
		}
	} else {
		a.logger.Warnf("Kafka is not configured, outbox events stay in the database")
	}

	productUC := usecase.NewProductUC(
		productRepo,
		commentRepo,
		imageRepo,
		similarityRepo,
		outboxRepo,
		cacheRepo,
		imagesInfra,
		txRunner,
		a.logger,
	)
	commentUC := usecase.NewCommentUC(
		commentRepo,
		productRepo,
		outboxRepo,
		cacheRepo,
		txRunner,
		a.logger,
	)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger, a.cfg.Http, a.cfg.Minio).Init(productUC, commentUC)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(productUC)

	return nil
}

func (a *App) initMinio(shutdownCtx context.Context) (*minioInfra.MinioInfrastructure, error) {
	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	objects := s3Repo.NewImageRepo(minioClient, a.cfg.Minio.BucketName)
	infra := minioInfra.NewMinioInfrastructure(objects, a.cfg.Minio, a.logger, shutdownCtx)
	a.closer.Add("minio cleanup", infra.WaitForCleanup)

	return infra, nil
}

func (a *App) initKafka(outboxRepo usecase.OutboxRepository, dsn string) error {
	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

	if err := producer.EnsureTopic(topicTimeout); err != nil {
		// топик может создать брокер при первой записи
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	a.worker = kafka.NewOutboxWorker(
		outboxRepo,
		a.logger,
		producer,
		dsn,
		a.cfg.Kafka.BatchSize,
		a.cfg.Kafka.MaxRetries,
	)

	return nil
}

// Run запускает серверы и блокируется до сигнала остановки или падения одного из серверов.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.worker != nil {
		a.worker.Start(ctx)
		a.closer.AddFunc("outbox worker", a.worker.Stop)
	}

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Серверы останавливаются первыми (LIFO)
	a.closer.Add("gRPC server", a.grpcSrv.Stop)
	a.closer.Add("HTTP server", a.httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	timeout := a.cfg.Http.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		appErr = errors.Join(appErr, err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(context.Background()); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
