package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/cli/config"
	"github.com/secmon-lab/reportingbot/pkg/controller/tui"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdAssess() *cli.Command {
	var siteCfg config.Site
	var contentCfg config.Content
	var answers usecase.Answers
	var asJSON bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "institution",
			Usage:       "Institution type (commercial_bank, investment_bank, insurance, asset_manager, credit_union, fintech)",
			Destination: &answers.InstitutionType,
		},
		&cli.StringFlag{
			Name:        "jurisdiction",
			Usage:       "Primary jurisdiction (eu, uk, us, sg, hk, au)",
			Destination: &answers.Jurisdiction,
		},
		&cli.StringFlag{
			Name:        "period",
			Usage:       "Reporting period (monthly, quarterly, annual)",
			Destination: &answers.ReportingPeriod,
		},
		&cli.StringSliceFlag{
			Name:        "category",
			Usage:       "Available data category, repeatable (e.g. \"Balance Sheet Data\")",
			Destination: &answers.DataCategories,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the report as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, contentCfg.Flags()...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run the regulatory readiness check, interactively or from flags",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_, opts, err := siteOptions(&siteCfg, &contentCfg)
			if err != nil {
				return err
			}
			uc := usecase.New(memory.New(), opts...)
			defer uc.Close()

			w := c.Root().Writer

			// Without answers, walk the wizard in the terminal
			if answers.InstitutionType == "" && answers.Jurisdiction == "" && len(answers.DataCategories) == 0 {
				wizard := tui.NewWizard(uc.ScoringConfig())
				if _, err := tea.NewProgram(wizard, tea.WithContext(ctx)).Run(); err != nil {
					return goerr.Wrap(err, "failed to run readiness wizard")
				}
				if a := wizard.Assessment(); a != nil {
					_, _ = fmt.Fprintln(w, tui.RenderAssessment(a))
				}
				return nil
			}

			st, err := uc.Checker.Assess(ctx, answers)
			if err != nil {
				return goerr.Wrap(err, "failed to assess readiness")
			}
			a := st.Assessment

			if asJSON {
				safe.EncodeJSON(ctx, w, assessmentOutput{
					Score:     a.Score,
					Readiness: a.Band.String(),
					Missing:   categoryNames(a.Missing),
					RiskNotes: a.RiskNotes,
					NextSteps: a.NextSteps,
				})
				return nil
			}
			printAssessment(w, a)
			return nil
		},
	}
}

type assessmentOutput struct {
	Score     int      `json:"score"`
	Readiness string   `json:"readiness"`
	Missing   []string `json:"missing"`
	RiskNotes []string `json:"risk_notes"`
	NextSteps []string `json:"next_steps"`
}

func categoryNames(categories []model.DataCategory) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return names
}

func bandColor(band types.ReadinessBand) *color.Color {
	switch band {
	case types.ReadinessGood:
		return color.New(color.FgGreen, color.Bold)
	case types.ReadinessModerate:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printAssessment(w io.Writer, a *model.Assessment) {
	heading := color.New(color.Bold, color.Underline)

	_, _ = bandColor(a.Band).Fprintf(w, "Readiness score: %d/100 (%s)\n", a.Score, a.Band.Label())

	_, _ = fmt.Fprintln(w)
	_, _ = heading.Fprintln(w, "Missing Data Categories")
	if len(a.Missing) == 0 {
		_, _ = fmt.Fprintln(w, "  All data categories are available.")
	}
	for _, c := range a.Missing {
		_, _ = fmt.Fprintf(w, "  - %s\n", c)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = heading.Fprintln(w, "Risk Areas")
	for _, note := range a.RiskNotes {
		_, _ = color.New(color.FgYellow).Fprintf(w, "  ! %s\n", note)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = heading.Fprintln(w, "Recommended Next Steps")
	for i, step := range a.NextSteps {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
