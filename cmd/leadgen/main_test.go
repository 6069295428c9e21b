package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func loggerApp() *cli.App {
	return &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error {
			return nil
		},
	}
}

func TestSetupLogger(t *testing.T) {
	t.Run("accepts all levels case-insensitively", func(t *testing.T) {
		for _, level := range []string{"debug", "Info", "WARN", "eRRor"} {
			t.Run(level, func(t *testing.T) {
				err := loggerApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := loggerApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestSeedCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "leadgen",
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "input", Required: true},
					&cli.IntFlag{Name: "batch-size", Value: 100},
				},
			},
		},
	}

	t.Run("db is required", func(t *testing.T) {
		err := app.Run([]string{"leadgen", "seed", "--input", "/tmp/corpus.jsonl"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("input is required", func(t *testing.T) {
		err := app.Run([]string{"leadgen", "seed", "--db", "/tmp/db"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})
}
