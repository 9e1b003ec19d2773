package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zarlcorp/saltr/internal/cli"
	"github.com/zarlcorp/saltr/internal/config"
	"github.com/zarlcorp/saltr/internal/secret"
	"github.com/zarlcorp/saltr/internal/tui"
	"github.com/zarlcorp/saltr/internal/vault"
)

// session holds what every subcommand needs once flags are parsed.
type session struct {
	configPath string
	vaultPath  string

	cfg   config.Config
	log   *slog.Logger
	store *vault.Store
	gen   *secret.Generator
}

func newRootCmd() *cobra.Command {
	rt := &session{gen: secret.New()}

	root := &cobra.Command{
		Use:           "saltr",
		Short:         "Generate secrets and keep them in a local vault file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().StringVar(&rt.vaultPath, "vault", "", "vault file (overrides config)")

	root.AddCommand(
		versionCmd(),
		generateCmd(rt),
		addCmd(rt),
		listCmd(rt),
		deleteCmd(rt),
	)
	return root
}

func (rt *session) setup() error {
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		return err
	}
	if rt.vaultPath != "" {
		cfg.VaultPath = rt.vaultPath
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	rt.cfg = cfg
	rt.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(rt.log)
	rt.store = vault.Open(cfg.VaultPath, vault.WithLogger(rt.log))

	rt.log.Debug("configured", "vault", cfg.VaultPath, "length", cfg.Length)
	return nil
}

// runTUI runs the TUI until the user quits or ctx is cancelled. A
// cancelled context is a normal shutdown, not an error.
func (rt *session) runTUI(ctx context.Context, opts ...tea.ProgramOption) error {
	m := tui.New(version, rt.store, rt.gen, rt.cfg.Length)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no config needed to print a version
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "saltr %s\n", version)
		},
	}
}

func generateCmd(rt *session) *cobra.Command {
	var (
		length int
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random alphanumeric secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = rt.cfg.Length
			}
			if length < 0 {
				return fmt.Errorf("length %d is negative", length)
			}
			return cli.Generate(cmd.OutOrStdout(), rt.gen, length, copyIt)
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", secret.DefaultLength, "number of characters")
	cmd.Flags().BoolVar(&copyIt, "copy", false, "also copy to the clipboard")
	return cmd
}

func addCmd(rt *session) *cobra.Command {
	var (
		e        vault.Entry
		generate bool
		prompt   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a record to the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case generate:
				e.Value = rt.gen.Generate(rt.cfg.Length)
				fmt.Fprintln(cmd.ErrOrStderr(), "value:", e.Value)
			case prompt:
				v, err := cli.ReadPassword("value: ", cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				e.Value = v
			}
			return cli.Add(cmd.OutOrStdout(), rt.store, e)
		},
	}

	f := cmd.Flags()
	f.StringVar(&e.Name, "name", "", "record name")
	f.StringVar(&e.Value, "value", "", "secret value")
	f.BoolVar(&generate, "generate", false, "generate the value")
	f.BoolVar(&prompt, "prompt", false, "read the value from the terminal without echo")
	f.StringVar(&e.Website, "website", "", "website")
	f.StringVar(&e.Username, "username", "", "username")
	f.StringVar(&e.Notes, "notes", "", "notes")
	cmd.MarkFlagsMutuallyExclusive("value", "generate", "prompt")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func listCmd(rt *session) *cobra.Command {
	var opts cli.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.List(cmd.OutOrStdout(), rt.store, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&opts.Reveal, "reveal", false, "show secret values")
	return cmd
}

func deleteCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete every record with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Delete(cmd.OutOrStdout(), rt.store, args[0])
		},
	}
}
