package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/service"
	"github.com/foodcritique/critique-web/internal/infrastructure/apiclient"
	"github.com/foodcritique/critique-web/internal/infrastructure/remote"
	"github.com/foodcritique/critique-web/internal/infrastructure/store"
	"github.com/foodcritique/critique-web/internal/pkg/config"
	"github.com/foodcritique/critique-web/pkg/logger"
)

// loadConfig reads configuration and applies the persistent flag overrides.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rootFlags.apiURL != "" {
		cfg.API.BaseURL = rootFlags.apiURL
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	return cfg, nil
}

// cliLogger logs to stderr so command output on stdout stays clean.
func cliLogger(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Format:    logger.FormatConsole,
		Output:    os.Stderr,
		Component: "cli",
	})
}

// localSession builds and bootstraps the session of the selected profile,
// backed by the credentials file.
func localSession(cmd *cobra.Command) (*service.Session, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	log := cliLogger(cfg)

	path := cfg.CLICredentialsFile
	if path == "" {
		if path, err = store.DefaultCredentialsPath(); err != nil {
			return nil, err
		}
	}

	client := apiclient.New(apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, log)
	s := service.NewSession(service.SessionConfig{
		VisitorID:   rootFlags.profile,
		Store:       store.NewFileStore(path),
		Remote:      remote.New(client),
		Notes:       service.NewNotifications(cfg.Session.NotificationTTL),
		StalePolicy: service.ParseStaleCredentialPolicy(cfg.Session.StaleCredentials),
		Log:         log,
	})
	s.Bootstrap(ctx)
	return s, nil
}

// requireLogin returns the bootstrapped session, or an error telling the
// user to log in first.
func requireLogin(cmd *cobra.Command) (*service.Session, error) {
	s, err := localSession(cmd)
	if err != nil {
		return nil, err
	}
	if s.State() != service.StateAuthenticated {
		flushNotifications(cmd, s)
		return nil, fmt.Errorf("not logged in, run 'critique login' first")
	}
	return s, nil
}

// flushNotifications prints the session's pending notifications to stderr.
func flushNotifications(cmd *cobra.Command, s *service.Session) {
	for _, n := range s.Notifications().Drain() {
		fmt.Fprintf(cmd.ErrOrStderr(), "! %s\n", n.Message)
	}
}

// finish prints pending notifications and passes err through.
func finish(cmd *cobra.Command, s *service.Session, err error) error {
	flushNotifications(cmd, s)
	return err
}

func newTable(out io.Writer) table.Writer {
	w := table.NewWriter()
	w.SetOutputMirror(out)
	w.SetStyle(table.StyleLight)
	return w
}

// readSecret returns value, or reads one line from in when value is empty.
func readSecret(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(prompt), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func actionList(a domain.Actions) string {
	return strings.Join(a.Labels(), ",")
}
