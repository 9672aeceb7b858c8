package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	simerrors "github.com/twitter/fleetsim/common/errors"
	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
	"github.com/twitter/fleetsim/scheduler/server"
	"github.com/twitter/fleetsim/worker/workerserver"
)

const DefaultConfigPath = "tasks.json"

// SimCLI holds the root command and the values of its flags.
type SimCLI struct {
	RootCmd *cobra.Command

	ConfigPath   string
	LogLevel     string
	Quantum      time.Duration
	TickRate     time.Duration
	PollInterval time.Duration
	StatsFile    string
}

func NewSimCLI() *SimCLI {
	c := &SimCLI{}

	c.RootCmd = &cobra.Command{
		Use:               "fleetsim (rr|sjf|priority)",
		Short:             "fleetsim simulates scheduling a set of tasks over capacity-bounded servers",
		Args:              checkArgs,
		PersistentPreRunE: c.Init,
		RunE:              c.run,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	c.RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return simerrors.NewError(err, simerrors.UsageExitCode)
	})

	flags := c.RootCmd.PersistentFlags()
	flags.StringVar(&c.ConfigPath, "config", DefaultConfigPath, "Topology file (.json, .yaml, .yml, .hcl) or builtin:<name>")
	flags.StringVar(&c.LogLevel, "log_level", "info", "Log everything at this level and above (error|warn|info|debug)")
	flags.DurationVar(&c.Quantum, "quantum", server.DefaultQuantum, "Round robin slice length")
	flags.DurationVar(&c.TickRate, "tick", server.DefaultTickRate, "Upper bound between two dispatch passes")
	flags.DurationVar(&c.PollInterval, "poll", workerserver.DefaultPollInterval, "Upper bound between two server loop passes")
	flags.StringVar(&c.StatsFile, "stats_file", "", "If set, write the stats registry as JSON to this file at the end of the run")

	return c
}

// Exec runs the root command. Usage errors print the usage text to stderr.
func (c *SimCLI) Exec() error {
	err := c.RootCmd.Execute()
	if simerrors.ExitCodeOf(err) == simerrors.UsageExitCode {
		fmt.Fprintln(c.RootCmd.OutOrStderr(), c.RootCmd.UsageString())
	}
	return err
}

func checkArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return simerrors.NewError(
			fmt.Errorf("expected exactly one policy argument (rr|sjf|priority), got %d", len(args)),
			simerrors.UsageExitCode)
	}
	if _, err := domain.ParsePolicy(args[0]); err != nil {
		return simerrors.NewError(err, simerrors.UsageExitCode)
	}
	return nil
}

// Can only be called from cobra command run or hook
func (c *SimCLI) Init(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return simerrors.NewError(errors.Wrap(err, "--log_level"), simerrors.UsageExitCode)
	}
	log.SetLevel(level)
	return nil
}

func (c *SimCLI) run(cmd *cobra.Command, args []string) error {
	policy, _ := domain.ParsePolicy(args[0])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stat := stats.NewCustomStatsReceiver(stats.NewFinagleStatsRegistry)
	sim := Simulation{
		ConfigPath: c.ConfigPath,
		Scheduler: server.SchedulerConfiguration{
			Policy:   policy,
			Quantum:  c.Quantum,
			TickRate: c.TickRate,
		},
		Server: workerserver.Config{PollInterval: c.PollInterval},
	}
	metrics, err := sim.Run(ctx, stat)
	if err != nil && simerrors.ExitCodeOf(err) != simerrors.RunFailureExitCode {
		return err
	}

	// An interrupted run still reports what it completed.
	fmt.Fprintln(cmd.OutOrStdout(), RenderSummary(policy, metrics))

	if c.StatsFile != "" {
		if werr := os.WriteFile(c.StatsFile, stat.Render(true), 0644); werr != nil {
			log.Errorf("Error writing stats to %s: %v", c.StatsFile, werr)
			if err == nil {
				err = simerrors.NewError(errors.Wrapf(werr, "writing stats to %s", c.StatsFile), simerrors.RunFailureExitCode)
			}
		}
	}
	return err
}
