package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/auth"
	cfgpkg "github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/config"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/server"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			c.ListenAddr = serveAddr
		}
		if err := c.Validate(); err != nil {
			return err
		}
		log, err := newLogger(c)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, c, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides listen_addr)")
}

// buildServer wires the HTTP server and its session store from config.
func buildServer(c *cfgpkg.Global, log *zap.Logger) (*server.Server, *session.Store, error) {
	creds := make([]auth.Credential, 0, len(c.Users))
	for _, u := range c.Users {
		creds = append(creds, auth.Credential{Username: u.Username, PasswordHash: u.PasswordHash, Role: u.Role})
	}
	authn, err := auth.NewStatic(creds)
	if err != nil {
		return nil, nil, fmt.Errorf("users: %w", err)
	}
	if authn.Len() == 0 {
		log.Warn("no users configured; add one with `fabrica config add-user`")
	}

	secret := c.JWTSecret
	if secret == "" {
		if secret, err = auth.RandomSecret(); err != nil {
			return nil, nil, err
		}
		log.Warn("jwt_secret not set; using a random secret, tokens will not survive a restart")
	}
	tokens, err := auth.NewTokens(secret, time.Duration(c.TokenTTLMin)*time.Minute)
	if err != nil {
		return nil, nil, err
	}

	sessions := session.NewStore(time.Duration(c.SessionTTLMin)*time.Minute, log)
	srv := server.New(server.Options{
		MaxUploadMB:  c.MaxUploadMB,
		SampleRows:   c.SampleRows,
		DefaultAlpha: c.DefaultAlpha,
		CORSOrigins:  c.CORSOrigins,
	}, server.Deps{
		Auth:     authn,
		Tokens:   tokens,
		Sessions: sessions,
		Exporter: export.New(c.ExportDir),
		Log:      log,
	})
	return srv, sessions, nil
}

func serve(ctx context.Context, c *cfgpkg.Global, log *zap.Logger) error {
	srv, sessions, err := buildServer(c, log)
	if err != nil {
		return err
	}

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go sessions.Run(sweepCtx, time.Minute)

	hs := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", c.ListenAddr))
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	fmt.Printf("✓ Serving on %s\n", c.ListenAddr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
