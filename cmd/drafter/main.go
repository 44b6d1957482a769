package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/config"
	"github.com/example/drafter/internal/notify"
	"github.com/example/drafter/internal/persist"
	"github.com/example/drafter/internal/store"
	"github.com/example/drafter/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	config   *config.Config
	notifier *notify.Notifier
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer

	storeDir     string
	themeName    string
	saveAlerts   bool
	loadAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

// subcommand returns a copy of r whose program name includes name.
func (r *root) subcommand(name string) *root {
	cp := *r
	cp.fs = nil
	cp.program = strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &cp
}

func newRoot(cfg *config.Config) *root {
	r := &root{
		fs:       flag.NewFlagSet("drafter", flag.ContinueOnError),
		program:  "drafter",
		config:   cfg,
		notifier: notify.New(notify.LoadPreferences()),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.SetOutput(r.stderr)
	r.fs.StringVar(&r.storeDir, "store", "", "directory holding the saved drawing (default: $"+config.EnvStoreDir+", config store_dir, or the user data dir)")
	r.fs.StringVar(&r.themeName, "theme", "", "colour theme to use (default, dark, a theme file, or one defined in the config)")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving the drawing")
	r.fs.BoolVar(&r.loadAlerts, "notify-load", cfg.Notify.Load, "show a desktop notification after loading a drawing")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventLoad, r.loadAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	// Precedence: CLI > Env > Config > Default. The env was folded into
	// r.config when it was loaded.
	themeName := r.themeName
	if themeName == "" {
		themeName = r.config.Theme
	}
	t, err := theme.NewLoader(r.config.Themes).Load(themeName)
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: %v. using default.\n", err)
		t = theme.Default()
	}
	r.activeTheme = t

	name := r.fs.Arg(0)
	sub := r.subcommand(name)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch name {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, sub)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, sub)
	case "list":
		cmd, err = parseListCmd(subArgs, sub)
	case "move":
		cmd, err = parseMoveCmd(subArgs, sub)
	case "transform":
		cmd, err = parseTransformCmd(subArgs, sub)
	case "clear":
		cmd, err = parseClearCmd(subArgs, sub)
	case "export":
		cmd, err = parseExportCmd(subArgs, sub)
	case "copy":
		cmd, err = parseCopyCmd(subArgs, sub)
	case "paste":
		cmd, err = parsePasteCmd(subArgs, sub)
	case "open":
		cmd, err = parseOpenCmd(subArgs, sub)
	case "config":
		cmd, err = parseConfigCmd(subArgs, sub)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: sub}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveStoreDir applies the flag, then the config (which already carries
// the environment), then the user data directory.
func (r *root) resolveStoreDir() (string, error) {
	if r.storeDir != "" {
		return r.storeDir, nil
	}
	if r.config.StoreDir != "" {
		return r.config.StoreDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate store: %w", err)
	}
	return filepath.Join(home, ".local", "share", "drafter"), nil
}

func (r *root) repository() (*persist.Repository, string, error) {
	dir, err := r.resolveStoreDir()
	if err != nil {
		return nil, "", err
	}
	return persist.New(store.NewDir(dir)), dir, nil
}

// openSession loads the saved drawing into a new session configured from
// the config file. A missing drawing starts empty.
func (r *root) openSession() (*board.Session, *persist.Repository, error) {
	repo, _, err := r.repository()
	if err != nil {
		return nil, nil, err
	}
	doc, err := repo.Load()
	switch {
	case errors.Is(err, persist.ErrNotFound):
		fmt.Fprintf(r.stderr, "%v; starting empty\n", err)
	case err != nil:
		return nil, nil, err
	default:
		if r.notifier != nil {
			r.notifier.Load(fmt.Sprintf("%d shapes", len(doc.Shapes)))
		}
	}
	s := board.NewSession(board.WithDocument(doc))
	r.applyDefaults(s)
	return s, repo, nil
}

func (r *root) applyDefaults(s *board.Session) {
	cfg := r.config
	s.SetShowAnnotations(cfg.ShowAnnotations)
	if cfg.Tool != "" {
		tool, err := board.ParseTool(cfg.Tool)
		if err == nil {
			err = s.SetTool(tool)
		}
		if err != nil {
			fmt.Fprintf(r.stderr, "warning: config tool: %v\n", err)
		}
	}
	if cfg.Color != "" {
		if err := s.SetStrokeColor(cfg.Color); err != nil {
			fmt.Fprintf(r.stderr, "warning: config color: %v\n", err)
		}
	}
	if cfg.Width != 0 {
		if err := s.SetStrokeWidth(cfg.Width); err != nil {
			fmt.Fprintf(r.stderr, "warning: config width: %v\n", err)
		}
	}
}

func (r *root) save(repo *persist.Repository, s *board.Session) error {
	if err := repo.Save(s.Document()); err != nil {
		return err
	}
	if r.notifier != nil {
		dir, _ := r.resolveStoreDir()
		r.notifier.Save(filepath.Join(dir, repo.Key()))
	}
	return nil
}

func loadConfig(stderr io.Writer) *config.Config {
	cfg, err := config.NewLoader(version, configPathOverride).Load()
	if err != nil {
		fmt.Fprintf(stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

func main() {
	r := newRoot(loadConfig(os.Stderr))
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, flag.ErrHelp):
			return
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
