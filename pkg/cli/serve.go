package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/cli/config"
	httpctrl "github.com/secmon-lab/reportingbot/pkg/controller/http"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
	"github.com/secmon-lab/reportingbot/pkg/service/worker"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(version string) *cli.Command {
	var addr string
	var chatRate float64
	var chatBurst int
	var siteCfg config.Site
	var contentCfg config.Content
	var sessionCfg config.Session
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("REPORTINGBOT_ADDR"),
			Destination: &addr,
		},
		&cli.FloatFlag{
			Name:        "chat-rate",
			Usage:       "Chat messages per second allowed per client IP",
			Value:       httpctrl.DefaultRateLimit,
			Sources:     cli.EnvVars("REPORTINGBOT_CHAT_RATE"),
			Destination: &chatRate,
		},
		&cli.IntFlag{
			Name:        "chat-burst",
			Usage:       "Chat message burst allowed per client IP",
			Value:       httpctrl.DefaultRateBurst,
			Sources:     cli.EnvVars("REPORTINGBOT_CHAT_BURST"),
			Destination: &chatBurst,
		},
	}

	// Add shared config flags
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, contentCfg.Flags()...)
	flags = append(flags, sessionCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			site, siteOpts, err := siteOptions(&siteCfg, &contentCfg)
			if err != nil {
				return err
			}

			// Flag values first so the site file wins
			ucOpts := append(sessionCfg.Options(), siteOpts...)
			uc := usecase.New(memory.New(), ucOpts...)
			defer uc.Close()

			handler, err := httpctrl.New(uc,
				httpctrl.WithRateLimiter(httpctrl.NewRateLimiter(chatRate, chatBurst)),
				httpctrl.WithSecureCookie(sessionCfg.SecureCookie()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sweeper := worker.NewSessionSweeper(uc.Session, site.SweepInterval(sessionCfg.SweepInterval()))

			logging.Default().Info("Starting HTTP server",
				"addr", addr,
				"site", site,
				"session", sessionCfg.LogAttrs(),
				"content", contentCfg.LogAttrs(),
				"sentry", sentryCfg.LogAttrs(),
			)

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				sweeper.Start(ctx)
				<-sweeper.Done()
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
