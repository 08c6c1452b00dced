package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/cli/config"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var siteCfg config.Site
	var contentCfg config.Content

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, contentCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the site configuration and content files",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			site, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			scoring := site.Scoring.ToDomainScoringConfig()
			logger.Info("Site configuration validation passed",
				"catalog_size", len(scoring.Catalog),
				"risk_rules", len(scoring.RiskRules),
				"base", scoring.Base,
				"weight", scoring.Weight,
			)

			doc, err := contentCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "content validation failed")
			}
			logger.Info("Content validation passed",
				"brand", doc.Brand.Name,
				"timeline_regions", len(doc.Timeline.Regions),
				"chat_rules", len(doc.Chat.Rules),
				"cta_questions", len(doc.CTA.Questions),
				"coverage_regions", len(doc.Coverage.Regions),
			)

			return nil
		},
	}
}
