package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath     string
	commandLine string
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("couldn't load config, did you run init? %w", err)
	}
	return configuration, err
}

// loadShellConfig is like loadConfig but falls back to the built-in defaults
// when there is no configuration.
func loadShellConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

// openEventLog returns the configured event logger and a function to flush
// and close it.
func openEventLog(configuration *config.Configuration) (*logger.Logger, func(), error) {
	if configuration.EventLog == "" {
		return logger.NewNopLogger(), func() {}, nil
	}

	fd, err := configuration.OpenEventLog()
	if err != nil {
		return nil, nil, err
	}

	eventLog := logger.NewJSONLinesLogger(fd)
	return eventLog, func() {
		eventLog.Sync()
		fd.Close()
	}, nil
}

func diagnosticLogger(cmd *cobra.Command) *zap.SugaredLogger {
	return logger.NewDiagnosticLogger(cmd.ErrOrStderr(), cmd.Root().Name())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal interactive shell",
	Long: `A minimal shell with the echo, type and exit builtins. Anything else
is looked up on PATH and run as an external program.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		ctx := context.Background()

		configuration, err := loadShellConfig()
		if err != nil {
			return err
		}
		diag := diagnosticLogger(cmd)

		eventLog, closeLog, err := openEventLog(configuration)
		if err != nil {
			return err
		}
		defer closeLog()

		session := eventLog.NewSession()
		session.SessionStart(os.Getenv("USER"), "local")
		defer session.SessionEnd()

		vio := vos.NewStdIO()
		registry := commands.NewRegistry(
			vos.NewPathResolver(vos.OSEnv{}, vos.NewHostChecker()),
			&vos.ExecRunner{},
		)
		registry.Events = session

		if cmd.Flags().Changed("command") {
			commands.NewShell(vio, registry, nil).RunLine(ctx, commandLine)
			return nil
		}

		isTerminal := isatty.IsTerminal(os.Stdin.Fd())

		var lines commands.LineReader
		if isTerminal {
			lines, err = commands.NewReadlineReader(vio, commands.ReadlineOptions{
				HistoryFile: configuration.HistoryPath(),
			})
			if err != nil {
				return err
			}
		} else {
			lines = commands.NewScannerReader(vio.Stdin(), vio.Stdout())
		}
		defer lines.Close()

		sh := commands.NewShell(vio, registry, lines)
		sh.Prompt = commands.ColorizePrompt(configuration.Prompt, configuration.PromptColor, isTerminal)
		sh.Log = diag

		if code := sh.Run(ctx); code != 0 {
			return fmt.Errorf("shell exited with status %d", code)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
}
