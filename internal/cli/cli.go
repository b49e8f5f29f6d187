// Package cli wires the catalog engine into the locstrings command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aldo97/iOSLocalizationEditor/catalog"
	"github.com/Aldo97/iOSLocalizationEditor/internal/config"
	"github.com/Aldo97/iOSLocalizationEditor/internal/discovery"
	"github.com/Aldo97/iOSLocalizationEditor/internal/genkeys"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var quiet, verbose bool

	rootCmd := &cobra.Command{
		Use:   "locstrings",
		Short: "Discover, inspect and edit .strings localization catalogs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// The engine works with logging fully disabled.
			if quiet {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			} else if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"disable all logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(setCmd())
	rootCmd.AddCommand(genCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

func scanCmd() *cobra.Command {
	var fingerprints bool
	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Build the catalog of all .strings files under a root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], fingerprints)
		},
	}
	cmd.Flags().BoolVar(&fingerprints, "fingerprints", false,
		"print a content fingerprint per localization")
	return cmd
}

func runScan(root string, fingerprints bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	groups, err := discovery.NewScanner(cfg).Scan(ctx, root)
	if err != nil {
		return fmt.Errorf("scanning %q: %w", root, err)
	}

	for _, g := range groups {
		fmt.Printf("%s (%s)\n", g.Name, g.Path)
		for _, l := range g.Localizations {
			name := catalog.LanguageName(l.Language)
			if name == "" {
				name = "unknown"
			}
			fmt.Printf("  %-10s %-20s %4d entries", l.Language, name, len(l.Entries))
			if fingerprints {
				fmt.Printf("  %016x", l.Fingerprint())
			}
			fmt.Println()
		}
	}
	return nil
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Look up one key in one .strings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], args[1])
		},
	}
}

func runGet(file, key string) error {
	loc := discovery.LoadLocalization(file)
	e, ok := loc.Lookup(key)
	if !ok {
		return fmt.Errorf("key %q not found in %q", key, file)
	}
	if e.Message != "" {
		fmt.Printf("/* %s */\n", e.Message)
	}
	fmt.Println(e.Value)
	return nil
}

func setCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "set <file> <key> <value>",
		Short: "Update one key and rewrite the file in canonical form",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], args[1], args[2], message)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "",
		"comment annotation stored with the entry")
	return cmd
}

func runSet(file, key, value, message string) error {
	loc := discovery.LoadLocalization(file)

	changed, err := catalog.Update(loc, key, value, message)
	if err != nil {
		return err
	}
	if !changed {
		log.Info().Str("key", key).Str("file", file).Msg("Nothing changed")
		return nil
	}
	log.Info().Str("key", key).Str("file", file).Msg("Updated")
	return nil
}

func genCmd() *cobra.Command {
	var out, pkg string
	cmd := &cobra.Command{
		Use:   "gen <root> <group>",
		Short: "Generate a Go file of key constants for one group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(args[0], args[1], out, pkg)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "keys_gen.go",
		"output file path")
	cmd.Flags().StringVar(&pkg, "pkg", "l10nkeys",
		"generated package name")
	return cmd
}

func runGen(root, groupName, out, pkg string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	groups, err := discovery.NewScanner(cfg).Scan(ctx, root)
	if err != nil {
		return fmt.Errorf("scanning %q: %w", root, err)
	}

	var group *catalog.Group
	for _, g := range groups {
		if g.Name == groupName {
			group = g
			break
		}
	}
	if group == nil {
		return fmt.Errorf("no group named %q under %q", groupName, root)
	}

	f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := genkeys.Write(f, pkg, group); err != nil {
		return fmt.Errorf("generating key constants: %w", err)
	}
	log.Info().Str("group", groupName).Str("output", out).Msg("Generated keys")
	return nil
}
