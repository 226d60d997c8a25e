package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/m3o/safe/internal/support"
	"github.com/m3o/safe/pkg/logging"
	"github.com/m3o/safe/pkg/safe"
)

var logger = logging.App("safe")

type Globals struct {
	Verbose        bool   `help:"Enable verbose logging." short:"v"`
	NonInteractive bool   `help:"Disable interactive prompts."`
	UseKeyring     bool   `help:"Look up the cipher password in the OS keyring."`
	LogToFile      bool   `help:"Enable logging to file." env:"SAFE_LOG_TO_FILE"`
	LogFilePath    string `help:"Override default log file path." env:"SAFE_LOG_FILE"`
	Config         string `help:"Additional configuration file." type:"path"`
	ConfigDir      string `help:"Override configuration directory." type:"path"`
	StateDir       string `help:"Override state directory." type:"path"`
	Backend        string `help:"Backing store: file, keyring or memory." env:"SAFE_BACKEND"`
}

func (g *Globals) options() support.Options {
	return support.Options{
		ConfigDir:      g.ConfigDir,
		StateDir:       g.StateDir,
		ConfigFile:     g.Config,
		Backend:        g.Backend,
		UseKeyring:     g.UseKeyring,
		NonInteractive: g.NonInteractive,
	}
}

type CLI struct {
	Globals `embed:""`

	Set     SetCmd     `cmd:"" help:"Encrypt and store a secret."`
	Get     GetCmd     `cmd:"" help:"Print a stored secret."`
	Clear   ClearCmd   `cmd:"" help:"Clear a stored secret."`
	Slots   SlotsCmd   `cmd:"" help:"List secret slots and whether they are set."`
	Version VersionCmd `cmd:"" help:"Show application version."`
}

func Main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("safe"),
		kong.Description("Local encrypted store for access tokens, user ids and API keys"),
		kong.UsageOnError(),
	)

	logPath := cli.Globals.LogFilePath
	if cli.Globals.LogToFile && logPath == "" {
		logPath = filepath.Join(logging.GetDefaultLogDir(), "safe.log")
	}

	logging.SetupLogging(cli.Globals.Verbose, logPath)

	err := kctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, safe.ErrDecryption) {
			fmt.Fprintln(os.Stderr, "The stored value is unreadable. If the cipher password changed, store the secret again with 'safe set'.")
		}
		os.Exit(1)
	}
}
