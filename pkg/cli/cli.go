package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/cli/config"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "reportingbot",
		Usage:   "Reporting.bot regulatory reporting automation site",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting reportingbot", "logger", loggerCfg, "version", version)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(version),
			cmdAssess(),
			cmdChat(),
			cmdValidate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

// siteOptions loads the site and content configuration into use case options
func siteOptions(siteCfg *config.Site, contentCfg *config.Content) (*config.SiteConfig, []usecase.Option, error) {
	site, err := siteCfg.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load site configuration")
	}
	opts, err := site.Options()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "invalid site configuration")
	}

	doc, err := contentCfg.Configure()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, usecase.WithContent(doc))

	return site, opts, nil
}
