package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "tui"}, names)

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("port"))
	assert.NotNil(t, root.PersistentFlags().Lookup("api-url"))
}

// stubRun replaces a subcommand's action and records the flags it observed.
func stubRun(t *testing.T, root *cobra.Command, name string) *bool {
	t.Helper()
	cmd, _, err := root.Find([]string{name})
	require.NoError(t, err)

	ran := false
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ran = true
		return nil
	}
	return &ran
}

func TestRootCommand_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("MONEYBALL_DATA_DIR", t.TempDir())
	t.Setenv("MONEYBALL_API_URL", "https://env.example.com/api")
	t.Setenv("MONEYBALL_PORT", "9000")

	opts := &options{}
	root := newRootCommandWith(opts)
	ran := stubRun(t, root, "serve")

	root.SetArgs([]string{"serve", "--api-url", "http://localhost:1234/api", "--port", "7000"})
	require.NoError(t, root.Execute())

	assert.True(t, *ran)
	require.NotNil(t, opts.cfg)
	assert.Equal(t, "http://localhost:1234/api", opts.cfg.APIURL)
	assert.Equal(t, 7000, opts.cfg.Port)
}

func TestRootCommand_EnvironmentWithoutFlags(t *testing.T) {
	t.Setenv("MONEYBALL_DATA_DIR", t.TempDir())
	t.Setenv("MONEYBALL_API_URL", "https://env.example.com/api")
	t.Setenv("MONEYBALL_PORT", "9000")

	opts := &options{}
	root := newRootCommandWith(opts)
	stubRun(t, root, "serve")

	root.SetArgs([]string{"serve"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "https://env.example.com/api", opts.cfg.APIURL)
	assert.Equal(t, 9000, opts.cfg.Port)
}

func TestRootCommand_InvalidAPIURL(t *testing.T) {
	t.Setenv("MONEYBALL_DATA_DIR", t.TempDir())

	root := newRootCommand()
	ran := stubRun(t, root, "tui")

	root.SetArgs([]string{"tui", "--api-url", "not a url"})
	assert.Error(t, root.Execute())
	assert.False(t, *ran)
}

func TestServeCommand_DocumentsSecureCookie(t *testing.T) {
	root := newRootCommand()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)

	assert.Contains(t, serve.Long, "Secure")
	assert.Contains(t, serve.Long, "DEV_MODE=true")
}

func TestCookieWarning(t *testing.T) {
	assert.Contains(t, cookieWarning(false), "HTTPS proxy")
	assert.Contains(t, cookieWarning(true), "Dev mode")
}
