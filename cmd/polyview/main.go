// Command polyview renders polygonal data files through a poly mapper,
// either interactively in the terminal or once into a text or PNG frame.
package main

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gogpu/gg"
	"github.com/mattn/go-isatty"

	"polymap/internal/config"
	"polymap/internal/geom"
	"polymap/internal/logging"
	"polymap/internal/lut"
	"polymap/internal/mapper"
	"polymap/internal/polydata"
	"polymap/internal/raster"
	"polymap/internal/render"
	"polymap/internal/term"
	"polymap/internal/tui"
)

// Default frame sizes when the config leaves them at zero.
var defaultSizes = map[string][2]int{
	term.Name:   {80, 24},
	raster.Name: {800, 600},
}

type options struct {
	configPath  string
	backend     string
	out         string
	width       int
	height      int
	scalars     string
	grid        string
	dump        bool
	interactive bool
	printConfig bool
	logFile     string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "polyview:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var o options
	fs := flag.NewFlagSet("polyview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", config.DefaultFile, "TOML config file; missing means defaults")
	fs.StringVar(&o.backend, "backend", "", "render target: "+strings.Join(render.Targets(), "|"))
	fs.StringVar(&o.out, "o", "", "output file (default stdout)")
	fs.IntVar(&o.width, "w", 0, "frame width in cells (term) or pixels (png)")
	fs.IntVar(&o.height, "h", 0, "frame height in cells (term) or pixels (png)")
	fs.StringVar(&o.scalars, "scalars", "", "feature attribute used as point scalar")
	fs.StringVar(&o.grid, "grid", "", "show a synthetic NxM triangle strip grid instead of a file")
	fs.BoolVar(&o.dump, "dump", false, "print the mapper state after rendering")
	fs.BoolVar(&o.interactive, "i", false, "run the interactive viewer even when not detected")
	fs.BoolVar(&o.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.StringVar(&o.logFile, "log", "", "append logs to this file instead of stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: polyview [flags] [file.{%s}]\n", strings.Join(trimDots(geom.Extensions), ","))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	override(&cfg, o)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if o.printConfig {
		return cfg.Write(stdout)
	}

	interactive := o.interactive ||
		(cfg.Output.Backend == term.Name && cfg.Output.Path == "" && !o.dump && isTerminal(stdout))

	closeLog, err := setupLogging(cfg, o, interactive, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if interactive {
		return runInteractive(cfg, o, fs.Arg(0))
	}
	d, name, err := loadData(cfg, o, fs.Arg(0))
	if err != nil {
		return err
	}
	logging.Logger().Info("polyview: rendering", "input", name, "backend", cfg.Output.Backend)
	return renderOnce(cfg, d, o.dump, stdout, stderr)
}

// override applies command line flags over the config file.
func override(cfg *config.Config, o options) {
	if o.backend != "" {
		cfg.Output.Backend = o.backend
	}
	if o.out != "" {
		cfg.Output.Path = o.out
	}
	if o.width > 0 {
		cfg.Output.Width = o.width
	}
	if o.height > 0 {
		cfg.Output.Height = o.height
	}
	if o.scalars != "" {
		cfg.Data.ScalarField = o.scalars
	}
}

// setupLogging routes logs to stderr, or to the -log file. The interactive
// viewer owns the terminal, so without -log it logs nowhere.
func setupLogging(cfg config.Config, o options, interactive bool, stderr io.Writer) (func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	closer := func() {}
	w := stderr
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w, closer = f, func() { f.Close() }
	case interactive:
		logging.SetLogger(nil)
		gg.SetLogger(nil)
		return closer, nil
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(logger)
	gg.SetLogger(logger)
	return closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseGrid(s string) (nx, ny int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &nx, &ny); err != nil || nx < 2 || ny < 2 {
		return 0, 0, fmt.Errorf("bad -grid %q: want NxM with N, M >= 2", s)
	}
	return nx, ny, nil
}

func loadData(cfg config.Config, o options, path string) (*polydata.PolyData, string, error) {
	switch {
	case o.grid != "":
		nx, ny, err := parseGrid(o.grid)
		if err != nil {
			return nil, "", err
		}
		return geom.Grid(nx, ny), "grid " + o.grid, nil
	case path != "":
		src := geom.NewFileSource(path, geom.Options{ScalarField: cfg.Data.ScalarField})
		d := polydata.NewFromSource(src)
		d.Update()
		if err := d.Err(); err != nil {
			return nil, "", err
		}
		return d, path, nil
	}
	return nil, "", errors.New("nothing to render: give a file or -grid NxM")
}

func runInteractive(cfg config.Config, o options, path string) error {
	var m tui.Model
	switch {
	case o.grid != "":
		nx, ny, err := parseGrid(o.grid)
		if err != nil {
			return err
		}
		m = tui.NewWithData(cfg, geom.Grid(nx, ny), "grid "+o.grid)
	case path != "":
		m = tui.NewWithPath(cfg, path)
	default:
		m = tui.New(cfg)
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	if o.dump {
		if fm, ok := final.(tui.Model); ok {
			return fm.Mapper().Dump(os.Stdout, "")
		}
	}
	return nil
}

// renderOnce draws one frame of d into the configured target and writes it
// to the output path or stdout.
func renderOnce(cfg config.Config, d *polydata.PolyData, dump bool, stdout, stderr io.Writer) error {
	backend := cfg.Output.Backend
	w, h := cfg.Output.Width, cfg.Output.Height
	if def, ok := defaultSizes[backend]; ok {
		w, h = cmp.Or(w, def[0]), cmp.Or(h, def[1])
	}
	tgt, err := render.NewTarget(backend, w, h)
	if err != nil {
		return err
	}
	if c, ok := tgt.(io.Closer); ok {
		defer c.Close()
	}
	if backend == raster.Name && cfg.Output.Path == "" && isTerminal(stdout) {
		return errors.New("refusing to write PNG to a terminal, use -o")
	}

	m := mapper.New()
	m.SetInput(d)
	cfg.Apply(m, lut.New())

	vp := tgt.Viewport()
	vp.Bounds = m.Bounds()
	tgt.SetViewport(vp)
	tgt.Clear()
	if err := m.Render(tgt); err != nil {
		return err
	}

	dumpTo := stderr
	if cfg.Output.Path != "" {
		if err := writeFile(cfg.Output.Path, tgt); err != nil {
			return err
		}
		dumpTo = stdout
	} else if _, err := tgt.WriteTo(stdout); err != nil {
		return fmt.Errorf("write %s frame: %w", backend, err)
	}
	if dump {
		return m.Dump(dumpTo, "")
	}
	return nil
}

func writeFile(path string, wt io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}
