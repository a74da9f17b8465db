package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/infra/config"
	"github.com/CrestNiraj12/lemmyterm/infra/editor"
	"github.com/CrestNiraj12/lemmyterm/infra/lemmy"
	"github.com/CrestNiraj12/lemmyterm/infra/logging"
	"github.com/CrestNiraj12/lemmyterm/infra/session"
	"github.com/CrestNiraj12/lemmyterm/tui"
	"github.com/CrestNiraj12/lemmyterm/tui/render"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		if rev := strings.TrimSpace(settings["vcs.revision"]); rev != "" {
			c = rev[:min(len(rev), 12)]
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lemmyterm",
		Short:         "Browse Lemmy from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return run(cfg)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())
	addVersion(cmd)
	addAccounts(cmd)
	return cmd
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the lemmyterm version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
			fmt.Fprint(cmd.OutOrStdout(), goversion.FuncWithOutput(shortened, v, c, d, output))
		},
	}
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	topLevel.AddCommand(cmd)
}

func addAccounts(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the stored accounts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			store, err := session.Open(cfg.DataDir, cfg.InstanceURL, cfg.InfiniteScroll)
			if err != nil {
				return fmt.Errorf("session store: %w", err)
			}
			printAccounts(cmd.OutOrStdout(), store.Preferences())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// printAccounts writes one row per account, marking the active one.
func printAccounts(w io.Writer, prefs domain.Preferences) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Instance"), bold.Sprint("Account"))
	for i, s := range prefs.Accounts {
		marker := ""
		if i == prefs.CurrentIndex {
			marker = "*"
		}
		instance := s.InstanceURL
		if instance == "" {
			instance = "(none)"
		}
		account := s.AccountName
		if !s.LoggedIn() {
			account = "(anonymous)"
		}
		tbl.AddRow(marker, instance, account)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func interactive(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func run(cfg config.Config) error {
	if !interactive(os.Stdin.Fd()) || !interactive(os.Stdout.Fd()) {
		return errors.New("an interactive terminal is required; see 'lemmyterm --help' for the non-interactive commands")
	}
	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	store, err := session.Open(cfg.DataDir, cfg.InstanceURL, cfg.InfiniteScroll)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	v, _, _ := resolvedRuntimeVersionInfo(version, commit, date)
	client := lemmy.NewClient(cfg.Timeout, "lemmyterm/"+v)

	var md render.Markdown = render.Plain{}
	if cfg.Markdown {
		md = render.NewGlamour("dark")
	}

	logger.Info("starting", "version", v, "instance", store.Current().InstanceURL, "config", cfg.ConfigFile)
	rootModel := tui.NewApp(tui.Deps{
		Posts:        lemmy.NewPostService(client),
		Comments:     lemmy.NewCommentService(client),
		Communities:  lemmy.NewCommunityService(client),
		Accounts:     lemmy.NewAccountService(client),
		Instances:    lemmy.NewInstanceService(client, lemmy.BootstrapInstance),
		Store:        store,
		Editor:       editor.NewEnvEditor(),
		Renderer:     render.New(md),
		Logger:       logger,
		PageSize:     cfg.PageSize,
		CommentDepth: cfg.CommentDepth,
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "lemmyterm: %v\n", err)
		os.Exit(1)
	}
}
