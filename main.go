package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/maxmalik/FORE/config"
	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/logging"
	"github.com/maxmalik/FORE/session"
	"github.com/maxmalik/FORE/web"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer logger.Sync()

	clock := clock.New()
	golfClient := golf.New(cfg.APIURL, cfg.APITimeout)

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	var store session.Store
	if cfg.RedisAddr != "" {
		rs := session.NewRedisStore(session.NewRedisClient(session.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), cfg.SessionTTL, clock)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rs.Ping(ctx)
		cancel()
		if err != nil {
			logger.Fatal("cannot connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rs.Close()
		store = rs
		logger.Info("storing sessions in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		ms := session.NewMemoryStore(cfg.SessionTTL, clock, logger)
		store = ms

		// Drop expired sessions every few minutes
		wg.Add(1)
		go ms.RunPeriodicSweep(5*time.Minute, shutdown, wg)
		logger.Info("storing sessions in memory")
	}

	ctrl, err := controller.New(clock, golfClient, store, logger, cfg.PostRedirect())
	if err != nil {
		logger.Fatal("error creating a new controller", zap.Error(err))
	}

	server, err := web.NewServer(web.Options{
		Port:           cfg.Port,
		CookieSecure:   cfg.CookieSecure,
		RequestTimeout: cfg.RequestTimeout(),
	}, ctrl, logger)
	if err != nil {
		logger.Fatal("error creating new web server", zap.Error(err))
	}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			logger.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
