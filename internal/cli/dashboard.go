package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/streamdash/internal/channel"
	"github.com/rileyhilliard/streamdash/internal/config"
	"github.com/rileyhilliard/streamdash/internal/dashboard"
	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/rileyhilliard/streamdash/internal/logger"
	"github.com/rileyhilliard/streamdash/internal/registry"
	"github.com/rileyhilliard/streamdash/internal/sampler"
	"github.com/rileyhilliard/streamdash/internal/ui"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// dashboardCommand loads config, wires the collectors and runs whichever
// front-end suits out: the TUI on a terminal, the plain loop otherwise.
func dashboardCommand(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	tty := isTerminal(out)
	useTUI := tty && !cfg.Plain

	log, err := newLogger(cfg, useTUI)
	if err != nil {
		return err
	}
	log.Debug("base dir %s, config dir %s (not read)", cfg.BaseDir, cfg.ConfigDir())

	src := newSource(cfg, log)
	theme := ui.NewTheme(termenv.NewOutput(out).EnvColorProfile())

	if useTUI {
		return runTUI(ctx, out, src, theme, cfg)
	}
	return dashboard.RunPlain(ctx, out, src, theme,
		dashboard.NewTicker(cfg.Interval),
		dashboard.WithClearScreen(tty))
}

// newSource builds the production collector chain.
func newSource(cfg *config.Config, log logger.Logger) *dashboard.Collector {
	smp := sampler.NewSystem(cfg.EffectiveDiskPath(), cfg.CPUWindow, sampler.WithLogger(log))
	reg := registry.NewPM2(cfg.Registry.Command, cfg.Registry.Args, cfg.Registry.Timeout, registry.WithLogger(log))
	chans := channel.NewCollector(afero.NewOsFs(), cfg.HLSDir(), channel.WithLogger(log))

	return dashboard.NewCollector(smp, reg, chans,
		dashboard.WithChannelTimeout(cfg.ChannelTimeout),
		dashboard.WithLogger(log))
}

// newLogger keeps log lines off the screen while the TUI owns it: they go
// to log_file, or nowhere when none is set. The plain loop logs to stderr.
func newLogger(cfg *config.Config, tui bool) (logger.Logger, error) {
	if tui && cfg.LogFile == "" {
		return logger.Noop(), nil
	}
	log, err := logger.NewZap("streamdash", logger.Options{
		Debug:      logger.DebugEnabled(),
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open log file",
			"Check that the log_file directory exists and is writable")
	}
	return log, nil
}

func runTUI(ctx context.Context, out io.Writer, src dashboard.Source, theme ui.Theme, cfg *config.Config) error {
	model := dashboard.NewModel(ctx, src, theme, dashboard.Cadence{Interval: cfg.Interval})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil && !isCleanExit(err) {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Dashboard UI failed",
			"Set STREAMDASH_PLAIN=true to use the plain output instead")
	}
	return dashboard.Close(out, theme)
}

// isCleanExit reports whether a bubbletea error just means the user or a
// signal stopped the program.
func isCleanExit(err error) bool {
	return stderrors.Is(err, tea.ErrProgramKilled) ||
		stderrors.Is(err, tea.ErrInterrupted) ||
		stderrors.Is(err, context.Canceled)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
