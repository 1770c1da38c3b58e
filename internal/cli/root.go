package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/artpar/quill/internal/app"
	"github.com/artpar/quill/internal/config"
	"github.com/artpar/quill/internal/session"
	"github.com/artpar/quill/internal/tui"
	"github.com/artpar/quill/internal/vim"
)

// ErrNotTerminal is returned when the editor is started interactively
// without a terminal.
var ErrNotTerminal = errors.New("quill needs an interactive terminal (use --script for headless runs)")

// isTerminal reports whether stdin and stdout are both terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// RootOptions holds options for the root command.
type RootOptions struct {
	ConfigPath string
	Script     string
	NoHistory  bool
	LogFile    string
	Keys       bool
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quill [file]",
		Short: "quill - a modal terminal text editor",
		Long: `quill is a small vim-style editor. It opens FILE (or an unnamed buffer)
in normal mode; i inserts text, ESC returns to normal mode, :w saves and :q quits.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Keys {
				printKeys(cmd.OutOrStdout())
				return nil
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(cmd, path, opts, version)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/quill/config.yaml)")
	cmd.Flags().StringVarP(&opts.Script, "script", "s", "", "Run keystrokes from FILE without a terminal (- for stdin)")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not read or record cursor positions and saves")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Log file (empty disables logging)")
	cmd.Flags().BoolVar(&opts.Keys, "keys", false, "List key bindings per mode and exit")

	return cmd
}

func runEditor(cmd *cobra.Command, path string, opts *RootOptions, version string) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = &opts.LogFile
	}
	if opts.NoHistory {
		cfg.History.Enabled = false
	}

	if opts.Script == "" && !isTerminal() {
		return ErrNotTerminal
	}

	logger, logCloser, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	appOpts := []app.Option{app.WithConfig(cfg), app.WithLogger(logger)}
	if cfg.History.Enabled {
		store, err := app.OpenHistory(cfg)
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			appOpts = append(appOpts, app.WithHistory(store))
		}
	}
	application := app.New(appOpts...)
	defer application.Close()

	ctx := cmd.Context()
	s, err := application.OpenSession(ctx, path)
	if err != nil {
		return err
	}

	if opts.Script != "" {
		err = runScript(ctx, s, opts.Script, cmd.InOrStdin(), cmd.ErrOrStderr())
	} else {
		err = tui.Run(ctx, s,
			tui.WithStatusTimeout(cfg.StatusTimeout),
			tui.WithVersion(version),
		)
	}
	if err != nil {
		logger.Error("session failed", "session", s.ID(), "error", err)
		return err
	}

	return application.CloseSession(ctx, s)
}

func printKeys(w io.Writer) {
	for _, mode := range []vim.Mode{vim.ModeNormal, vim.ModeInsert, vim.ModeCommand} {
		fmt.Fprintf(w, "%s\n", mode)
		for _, kb := range session.Bindings(mode) {
			fmt.Fprintf(w, "  %-10s %s\n", kb[0], kb[1])
		}
	}
}

// runScript replays the keystrokes in scriptPath, printing each new status
// message to out.
func runScript(ctx context.Context, s *session.Session, scriptPath string, stdin io.Reader, out io.Writer) error {
	var (
		content []byte
		err     error
	)
	if scriptPath == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(scriptPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	keys, err := session.ParseScript(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	return s.Run(ctx, keys, session.NewStatusWriter(out))
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}
