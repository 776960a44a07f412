//go:build linux

package main

import (
	"fmt"
	"os"
	"strconv"

	"gopause/exitcode"
	"gopause/notify"
	"gopause/process"
	"gopause/process_linux"
	"gopause/report"
	"gopause/session"
	"gopause/target"
	"gopause/toggle"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = "gopause"

var version = "0.1.0"

var (
	flagActive       bool
	flagPid          string
	flagName         string
	flagProp         bool
	flagSilent       bool
	flagNotifTimeout int
	flagInfo         bool
	flagDryRun       bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:     "gopause (-a | -p PID | -n NAME | -r) [flags]",
	Short:   "Toggle the suspended state of a process tree",
	Version: version,
	Long: `gopause suspends a running process tree with SIGSTOP, or resumes a
stopped one with SIGCONT. The whole tree is signaled so launcher shims and
their children stop together. The direction is decided by the state of the
root process alone.

The target is chosen by exactly one of: the active window's owning process
(-a), a literal pid (-p), a process name (-n), or an interactively picked
window (-r).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flagActive, "active", "a", false, "target the active window's owning process")
	f.StringVarP(&flagPid, "pid", "p", "", "target a literal process id")
	f.StringVarP(&flagName, "name", "n", "", "target a process by name")
	f.BoolVarP(&flagProp, "prop", "r", false, "target an interactively picked window")
	f.BoolVarP(&flagSilent, "silent", "s", false, "suppress the desktop notification")
	f.IntVarP(&flagNotifTimeout, "notif-timeout", "t", 5000, "notification display duration in milliseconds")
	f.BoolVar(&flagInfo, "info", false, "print diagnostic info after toggling")
	f.BoolVar(&flagDryRun, "dry-run", false, "compute and report the outcome without signaling")
	f.BoolVar(&flagDebug, "debug", false, "emit a verbose diagnostic trace to standard error")
}

// execute runs the root command and returns the process exit code
func execute() int {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return exitcode.Code(err)
	}
	return exitcode.Success
}

// config is the immutable per-invocation configuration built once from the
// CLI flags; no component reads flag state after this point.
type config struct {
	selection      target.Selection
	silent         bool
	notifTimeoutMS int
	info           bool
	dryRun         bool
	debug          bool
}

// configFrom validates flag combinations and freezes them into a config.
// Exactly one selection strategy must be given.
func configFrom(cmd *cobra.Command) (config, error) {
	sel, err := selectOne(flagActive, cmd.Flags().Changed("pid"), flagPid,
		cmd.Flags().Changed("name"), flagName, flagProp)
	if err != nil {
		return config{}, err
	}

	return config{
		selection:      sel,
		silent:         flagSilent,
		notifTimeoutMS: flagNotifTimeout,
		info:           flagInfo,
		dryRun:         flagDryRun,
		debug:          flagDebug,
	}, nil
}

// selectOne enforces mutual exclusivity of the selection flags. Presence
// rather than value is what counts for --pid and --name, so that an empty or
// sentinel value still selects the strategy and fails later with a precise
// error instead of a usage message.
func selectOne(active, pidSet bool, pid string, nameSet bool, name string, prop bool) (target.Selection, error) {
	var selections []target.Selection
	if active {
		selections = append(selections, target.Selection{Kind: target.ByActiveWindow})
	}
	if pidSet {
		selections = append(selections, target.Selection{Kind: target.ByPid, Value: pid})
	}
	if nameSet {
		selections = append(selections, target.Selection{Kind: target.ByName, Value: name})
	}
	if prop {
		selections = append(selections, target.Selection{Kind: target.ByInteractivePick})
	}

	if len(selections) != 1 {
		return target.Selection{}, exitcode.New(exitcode.ErrGeneral,
			"exactly one of --active, --pid, --name, --prop is required")
	}
	return selections[0], nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := configFrom(cmd)
	if err != nil {
		_ = cmd.Usage()
		return err
	}

	var dbg *logger.Logger
	if cfg.debug {
		dbg = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, appName))
	}

	ctx := cmd.Context()

	sc, err := session.NewDetector().Detect(ctx)
	if err != nil {
		return err
	}
	if dbg != nil {
		dbg.Debugln("session type", sc.Type, "desktop", sc.Desktop)
	}

	finder := process_linux.NewProcessFinder()

	resolver := target.NewResolver(finder)
	resolver.SetDebugLogger(dbg)
	pidArg, err := resolver.Resolve(ctx, cfg.selection, sc)
	if err != nil {
		return err
	}

	controller := toggle.NewController(finder, process_linux.NewProcessSignaler())
	controller.SetDebugLogger(dbg)
	res, err := controller.Toggle(pidArg, cfg.dryRun)
	if err != nil {
		return err
	}

	verb := "suspended"
	if res.NewState == process.ProcessRunning {
		verb = "resumed"
	}
	if cfg.dryRun {
		fmt.Printf("%s (pid %s) would be %s\n", res.ProcessName, pidArg, verb)
	} else {
		fmt.Printf("%s (pid %s) %s\n", res.ProcessName, pidArg, verb)
	}

	pid, _ := strconv.Atoi(pidArg) // Toggle already validated the format

	if !cfg.silent && !cfg.dryRun {
		note := notify.Toggled(process.ProcessID(pid), res.NewState, cfg.notifTimeoutMS)
		if err := notify.New(appName).Send(ctx, note); err != nil && dbg != nil {
			dbg.Debugln("notification failed:", err)
		}
	}

	if cfg.info {
		reporter := report.New(finder)
		reporter.SetDebugLogger(dbg)
		if err := reporter.PrintInfo(os.Stdout, sc, process.ProcessID(pid)); err != nil && dbg != nil {
			dbg.Debugln("info report failed:", err)
		}
	}

	return nil
}
