package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"evolve/internal/classifier"
	"evolve/internal/config"
	"evolve/internal/display"
	"evolve/internal/executor"
	"evolve/internal/interpreter"
	"evolve/internal/listener"
	"evolve/internal/logger"
	"evolve/internal/repair"
	"evolve/internal/supervisor"
)

var version = "dev"

var newRunner = func(out io.Writer) executor.Runner {
	return executor.New(executor.Options{Stdout: out})
}

func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "evolve [flags] [interpreter] <path_to_script> [args...]",
		Short: "Run a script and repair it until it succeeds",
		Long: `evolve runs a script under a pseudo-terminal, watches its exit status and output,
and on failure sends the script and its crash log to a repair service. The corrected
script replaces the original (a backup is kept) and is run again.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, cfgFile, args)
		},
	}

	flags := cmd.Flags()
	// Everything after the script path belongs to the script.
	flags.SetInterspersed(false)
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.evolve/config.yaml)")
	flags.String("endpoint", repair.DefaultEndpoint, "repair service URL")
	flags.String("api-key", "", "bearer token for the repair service")
	flags.String("backend", "evolve", "repair backend: evolve (alias http), gemini or ollama")
	flags.String("model", "", "model name for the gemini and ollama backends")
	flags.String("ollama-host", "", "ollama server URL")
	flags.Int("max-rounds", 0, "maximum repair rounds, 0 for no limit")
	flags.Duration("run-timeout", 0, "kill a run after this long, 0 for no limit")
	flags.Duration("repair-timeout", 0, "abandon a repair request after this long, 0 for no limit")
	flags.String("log-file", config.DefaultLogFile, "session log file")
	flags.Bool("confirm", false, "ask before writing a corrected script")
	flags.StringSlice("marker", nil, "extra case-insensitive failure marker (repeatable)")
	flags.String("report", "", "write a JSON session report to this file")

	for key, name := range map[string]string{
		config.KeyEndpoint:       "endpoint",
		config.KeyAPIKey:         "api-key",
		config.KeyBackend:        "backend",
		config.KeyModel:          "model",
		config.KeyOllamaHost:     "ollama-host",
		config.KeyMaxRounds:      "max-rounds",
		config.KeyRunTimeout:     "run-timeout",
		config.KeyRepairTimeout:  "repair-timeout",
		config.KeyLogFile:        "log-file",
		config.KeyConfirm:        "confirm",
		config.KeyFailureMarkers: "marker",
		config.KeyReport:         "report",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
	config.SetDefaults(v)
	config.BindEnv(v)

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, cfgFile string, args []string) error {
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	command, s, err := ParseInvocation(args)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := repair.New(ctx, cfg.Repair())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sup := &supervisor.Supervisor{
		Runner:        newRunner(out),
		Classifier:    classifier.New(cfg.FailureMarkers...),
		Repairer:      rep,
		Table:         interpreter.Default(),
		Script:        s,
		Command:       command,
		MaxRounds:     cfg.MaxRounds,
		RunTimeout:    cfg.RunTimeout,
		RepairTimeout: cfg.RepairTimeout,
		Out:           out,
	}
	if cfg.Confirm {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("%w: --confirm needs an interactive terminal", ErrInvocation)
		}
		sup.Confirm = confirmCorrection
	}

	res, runErr := sup.Run(ctx)
	if res != nil {
		if res.Metrics != nil {
			fmt.Fprintln(out, display.FormatSessionMetrics(res.Metrics))
		}
		if cfg.ReportFile != "" {
			if err := res.WriteReport(cfg.ReportFile); err != nil {
				return errors.Join(runErr, err)
			}
		}
	}
	return runErr
}

func confirmCorrection(string) (bool, error) {
	return listener.Confirm("Apply the corrected script?")
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, display.Fail("%v", err))
		if errors.Is(err, ErrInvocation) {
			fmt.Fprintln(os.Stderr, "Usage: "+cmd.UseLine())
		}
	}
	return err
}
