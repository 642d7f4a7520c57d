package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	// Restore the default logger after the test
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO", "Debug"} {
			assert.NoError(t, setupLogger(newContext(level)), "level %q", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestDatabaseFlagsRequireDB(t *testing.T) {
	ran := false
	app := &cli.App{
		Name: "statcite",
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Flags: databaseFlags(),
				Action: func(_ *cli.Context) error {
					ran = true
					return nil
				},
			},
		},
	}

	err := app.Run([]string{"statcite", "stats"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
	assert.False(t, ran)
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	app := &cli.App{
		Name: "statcite",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Flags:  databaseFlags(),
				Action: searchCommand,
			},
		},
	}

	err := app.Run([]string{"statcite", "search", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}
