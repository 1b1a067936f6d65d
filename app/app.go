package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aolivares/school-library-service/config"
	"github.com/aolivares/school-library-service/internal/events"
	"github.com/aolivares/school-library-service/internal/handler"
	"github.com/aolivares/school-library-service/internal/repository"
	"github.com/aolivares/school-library-service/internal/server"
	"github.com/aolivares/school-library-service/internal/service"
	"github.com/aolivares/school-library-service/internal/worker"
	"github.com/aolivares/school-library-service/migrations"
	"github.com/aolivares/school-library-service/pkg/kafka"
	"github.com/aolivares/school-library-service/pkg/logger"
	"github.com/aolivares/school-library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	pub := events.NewNopPublisher()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close() //nolint:errcheck
		pub = events.NewPublisher(producer, cfg.Kafka.Topic, log)
	}

	svc := service.NewService(repo, cfg.FinePolicy(), pub, log)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		return worker.NewSweeper(svc, cfg.Worker.SweepInterval, log).Run(ctx)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	cancel()
	if err = g.Wait(); err != nil && err != context.Canceled {
		log.Error("shutdown", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
