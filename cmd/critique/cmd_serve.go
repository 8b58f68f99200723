package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/foodcritique/critique-web/internal/api"
	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/core/service"
	"github.com/foodcritique/critique-web/internal/infrastructure/apiclient"
	mongodb "github.com/foodcritique/critique-web/internal/infrastructure/db/mongo"
	redisdb "github.com/foodcritique/critique-web/internal/infrastructure/db/redis"
	"github.com/foodcritique/critique-web/internal/infrastructure/remote"
	"github.com/foodcritique/critique-web/internal/infrastructure/sealer"
	"github.com/foodcritique/critique-web/internal/infrastructure/store"
	"github.com/foodcritique/critique-web/internal/pkg/config"
	"github.com/foodcritique/critique-web/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web service",
	Long: `Starts the HTTP service that holds one session per browser and serves
the restaurant, review and user pages as JSON. Stops gracefully on SIGINT or
SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.Format(),
		Component: "web",
	})

	health := map[string]handler.Pinger{}
	credStore, closeStore, err := buildCredentialStore(ctx, cfg, health, log)
	if err != nil {
		return err
	}
	defer closeStore()

	apiCfg := apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}
	// The probe client never carries a credential, so its 401s mean nothing.
	health["remote_api"] = apiclient.New(apiCfg, log)

	registry := service.NewRegistry(service.RegistryConfig{
		Store:           credStore,
		NewRemote:       remote.NewFactory(apiCfg, log),
		StalePolicy:     service.ParseStaleCredentialPolicy(cfg.Session.StaleCredentials),
		NotificationTTL: cfg.Session.NotificationTTL,
		IdleTTL:         cfg.Session.IdleTTL,
	}, log)

	e := api.NewRouter(api.Deps{
		Visitors:     service.NewVisitorService(secretOrEphemeral(cfg.Session.VisitorSecret, "VISITOR_SECRET", log), 0),
		Sessions:     registry,
		SecureCookie: !cfg.IsDevelopment(),
		Health:       health,
		Log:          log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("api", cfg.API.BaseURL).Str("store", cfg.Credential.Store).Msg("web service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return registry.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildCredentialStore connects the configured backend and registers it with
// the readiness probe. The returned func releases the connection.
func buildCredentialStore(ctx context.Context, cfg *config.Config, health map[string]handler.Pinger, log zerolog.Logger) (ports.CredentialStore, func(), error) {
	switch cfg.Credential.Store {
	case config.StoreRedis:
		s, err := sealer.New(secretOrEphemeral(cfg.Credential.Secret, "CREDENTIAL_SECRET", log))
		if err != nil {
			return nil, nil, err
		}
		st, err := redisdb.Open(ctx, redisdb.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Credential.TTL,
		}, s)
		if err != nil {
			return nil, nil, err
		}
		health["redis"] = st
		return st, func() { _ = st.Close() }, nil

	case config.StoreMongo:
		s, err := sealer.New(secretOrEphemeral(cfg.Credential.Secret, "CREDENTIAL_SECRET", log))
		if err != nil {
			return nil, nil, err
		}
		st, err := mongodb.Open(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			TTL:      cfg.Credential.TTL,
		}, s)
		if err != nil {
			return nil, nil, err
		}
		health["mongodb"] = st
		return st, func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = st.Close(dctx)
		}, nil

	default:
		log.Warn().Msg("credentials kept in memory, visitors are logged out on restart")
		return store.NewMemoryStore(), func() {}, nil
	}
}

// secretOrEphemeral returns secret, or a random one when it is empty. A
// random secret does not survive a restart, which config validation only
// allows in development.
func secretOrEphemeral(secret, name string, log zerolog.Logger) string {
	if secret != "" {
		return secret
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("read random secret: %v", err))
	}
	log.Warn().Str("variable", name).Msg("secret not set, using a random one for this process")
	return hex.EncodeToString(b)
}
