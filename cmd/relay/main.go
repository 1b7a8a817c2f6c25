package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/dkeye/roomkit/internal/adapters/credential"
	router "github.com/dkeye/roomkit/internal/adapters/http"
	relay "github.com/dkeye/roomkit/internal/adapters/signal"
	"github.com/dkeye/roomkit/internal/adapters/store"
	"github.com/dkeye/roomkit/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	v := config.New()
	flags := pflag.NewFlagSet("relay", pflag.ExitOnError)
	flags.Int("port", v.GetInt("port"), "listen port")
	flags.String("store", v.GetString("store"), "group store: memory or redis")
	flags.String("redis-addr", v.GetString("redis_addr"), "redis address for the redis store")
	_ = flags.Parse(os.Args[1:])
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("store", flags.Lookup("store"))
	_ = v.BindPFlag("redis_addr", flags.Lookup("redis-addr"))

	cfg, err := config.Decode(v)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	groups, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open store")
	}
	defer groups.Close()

	signer, err := credential.NewSigner(cfg.Secret, cfg.CredentialTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("relay needs a secret")
	}

	ctl := relay.NewRelayWSController(relay.Options{
		Store:        groups,
		Verifier:     signer,
		ReadLimit:    cfg.ReadLimit,
		PingPeriod:   cfg.PingPeriod,
		ChatLimit:    cfg.ChatLimit,
		ChatInterval: cfg.ChatInterval,
	})

	r := router.SetupRouter(ctx, cfg, ctl, signer)
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Str("store", cfg.Store).Msg("relay started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		ctl.Close()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("relay stopped with error")
		return
	}
	log.Info().Msg("Relay exited gracefully")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store != "redis" {
		return store.NewMemory(), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return store.NewRedis(rdb, cfg.GroupTTL), nil
}
