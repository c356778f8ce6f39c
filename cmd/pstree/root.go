package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gopstree/config"
	"gopstree/process"
	"gopstree/process_fixture"
	"gopstree/process_portable"
	"gopstree/pstree"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var version = "dev"

type options struct {
	procRoot string
	source   string
	replay   string
	dump     string
	pid      int
	timeout  time.Duration
	color    string
	wide     bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pstree",
		Short: "Print a snapshot of the process tree",
		Long: `Reads every visible process once, links each to its parent and prints
the result as an indented tree. Processes whose parent is not visible are
printed as additional roots.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.procRoot, "proc-root", "/proc", "procfs mount point (env PSTREE_PROC_ROOT)")
	flags.StringVar(&opts.source, "source", config.SourceAuto, "process source: auto, procfs or gopsutil (env PSTREE_SOURCE)")
	flags.StringVar(&opts.replay, "replay", "", "read the snapshot from a YAML fixture instead of the live system")
	flags.StringVar(&opts.dump, "dump", "", "write the raw snapshot to a YAML fixture before printing")
	flags.IntVarP(&opts.pid, "pid", "p", 0, "print only the subtree rooted at this pid")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort the scan after this long, 0 for no limit (env PSTREE_TIMEOUT)")
	flags.StringVar(&opts.color, "color", config.ColorAuto, "colorize output: auto, always or never (env PSTREE_COLOR)")
	flags.BoolVarP(&opts.wide, "wide", "w", false, "do not truncate lines to the terminal width")

	return cmd
}

// resolveConfig loads the environment and lets explicitly set flags win
func resolveConfig(flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.Changed("proc-root") {
		cfg.ProcRoot = opts.procRoot
	}
	if flags.Changed("source") {
		cfg.Source = opts.source
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}

	if opts.pid < 0 {
		return nil, fmt.Errorf("invalid pid %d", opts.pid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, out io.Writer, cfg *config.Config, opts *options) error {
	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "pstree"))

	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	src, err := openSource(cfg, opts.replay)
	if err != nil {
		return err
	}

	if opts.dump != "" {
		fx, err := process_fixture.Capture(ctx, src)
		if err != nil {
			return err
		}
		if err := fx.SaveFile(opts.dump); err != nil {
			return err
		}
		log.Debugln("Wrote", len(fx.Entries), "entries to", opts.dump)

		// print exactly what was dumped
		src = process_fixture.NewSource(fx)
	}

	forest, stats, err := pstree.Snapshot(ctx, src)
	if err != nil {
		return err
	}
	log.Debugln("Listed", stats.Listed, "parsed", stats.Parsed, "vanished", stats.Vanished,
		"denied", stats.Denied, "malformed", stats.Malformed, "duplicate", stats.Duplicate)

	terminal := isTerminal(out)
	report := pstree.ReportOptions{
		RenderOptions: pstree.RenderOptions{
			Color: cfg.UseColor(terminal),
		},
		Root: process.ProcessID(opts.pid),
	}
	if terminal && !opts.wide {
		report.Width = terminalWidth(out)
	}

	return pstree.WriteReport(out, forest, report)
}

// openSource picks the snapshot source. A fixture that cannot be loaded is
// as fatal as a missing procfs.
func openSource(cfg *config.Config, replay string) (process.Source, error) {
	if replay != "" {
		fx, err := process_fixture.Load(replay)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", process.ErrSourceUnavailable, err)
		}
		return process_fixture.NewSource(fx), nil
	}

	switch cfg.Source {
	case config.SourceGopsutil:
		return process_portable.New(), nil
	case config.SourceProcfs:
		src, err := procfsSource(cfg.ProcRoot)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", process.ErrSourceUnavailable, err)
		}
		return src, nil
	default:
		if _, err := os.Stat(cfg.ProcRoot); err == nil {
			if src, err := procfsSource(cfg.ProcRoot); err == nil {
				return src, nil
			}
		}
		return process_portable.New(), nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
