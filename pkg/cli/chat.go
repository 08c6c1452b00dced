package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/cli/config"
	"github.com/secmon-lab/reportingbot/pkg/controller/tui"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var siteCfg config.Site
	var contentCfg config.Content

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, contentCfg.Flags()...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the compliance assistant in the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_, opts, err := siteOptions(&siteCfg, &contentCfg)
			if err != nil {
				return err
			}
			uc := usecase.New(memory.New(), opts...)
			defer uc.Close()

			welcome := uc.Content.Site().Chat.Welcome
			if _, err := tea.NewProgram(tui.NewChat(uc.Chat, welcome), tea.WithContext(ctx)).Run(); err != nil {
				return goerr.Wrap(err, "failed to run chat")
			}
			return nil
		},
	}
}
