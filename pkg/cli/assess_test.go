package cli_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/cli"
)

func TestRun_AssessCommand_FromFlags(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"reportingbot", "assess",
		"--institution", "commercial_bank",
		"--jurisdiction", "uk",
		"--period", "monthly",
		"--category", "Balance Sheet Data",
		"--category", "P&L Statements",
		"--json",
	}, "test")
	gt.NoError(t, err)
}

func TestRun_AssessCommand_InvalidAnswers(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{
			name: "unknown institution",
			args: []string{"--institution", "hedge_fund", "--jurisdiction", "uk", "--category", "Balance Sheet Data"},
		},
		{
			name: "no categories",
			args: []string{"--institution", "fintech", "--jurisdiction", "uk"},
		},
		{
			name: "category outside catalog",
			args: []string{"--institution", "fintech", "--jurisdiction", "uk", "--category", "Weather Data"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"reportingbot", "assess"}, tc.args...)
			err := cli.Run(context.Background(), args, "test")
			gt.Error(t, err)
		})
	}
}
