// Command protoextract is a local debugging CLI around extract.Build:
// lift a wiki page fixture into Protocol IR, cache the result, and
// diff cached snapshots against each other. It does not fetch pages
// from the network or discover protocol versions; those stay out of
// scope, same as morfx's own debug CLI never talks to a package
// registry.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oxhq/protoir/extract"
	"github.com/oxhq/protoir/htmltree"
	"github.com/oxhq/protoir/internal/config"
	"github.com/oxhq/protoir/internal/fixtures"
	"github.com/oxhq/protoir/internal/store"
	"github.com/oxhq/protoir/ir"
	"github.com/oxhq/protoir/section"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s %v\n", red("Error:"), err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "protoextract",
		Short: "Lift, cache, and diff Minecraft protocol IR snapshots",
	}

	rootCmd.PersistentFlags().StringVar(&cfg.CacheDSN, "cache", cfg.CacheDSN, "snapshot cache DSN (local file path or libsql:// URL)")

	rootCmd.AddCommand(
		newExtractCmd(&cfg),
		newDiffCmd(&cfg),
		newCacheCmd(&cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newExtractCmd(cfg *config.Config) *cobra.Command {
	var gameVersion string
	var protocolNumber int
	var save bool

	cmd := &cobra.Command{
		Use:   "extract <fixture.html>",
		Short: "Lift a saved wiki page fixture into Protocol IR JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameVersion == "" {
				gameVersion = cfg.GameVersion
			}
			if protocolNumber == 0 {
				protocolNumber = cfg.ProtocolNumber
			}

			node, err := fixtures.LoadHTML(args[0])
			if err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}
			root := section.Build(htmltree.Flatten(node))

			proto, diag := extract.Build(root, gameVersion, protocolNumber)
			for _, entry := range diag.Entries() {
				colorize := yellow
				if entry.Severity == "error" {
					colorize = red
				}
				fmt.Fprintln(os.Stderr, colorize(entry.String()))
			}
			for _, verr := range ir.Validate(proto) {
				fmt.Fprintf(os.Stderr, "%s %v\n", red("invariant violation:"), verr)
			}

			body, err := json.MarshalIndent(proto, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal protocol: %w", err)
			}
			fmt.Println(string(body))

			if save {
				s, err := store.Open(cfg.CacheDSN)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer s.Close()
				if err := s.Save(proto); err != nil {
					return fmt.Errorf("save snapshot: %w", err)
				}
				fmt.Fprintf(os.Stderr, "%s saved %s/%d to %s\n", green("ok"), proto.GameVersion, proto.ProtocolNumber, cfg.CacheDSN)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gameVersion, "game-version", "", "game version tag to stamp on the lifted IR")
	cmd.Flags().IntVar(&protocolNumber, "protocol-number", 0, "protocol number to stamp on the lifted IR")
	cmd.Flags().BoolVar(&save, "save", false, "also save the lifted IR to the snapshot cache")
	return cmd
}

func newDiffCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <version-a> <version-b>",
		Short: "Diff two cached snapshots (gameVersion or gameVersion/protocolNumber)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.CacheDSN)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer s.Close()

			out, err := s.Diff(args[0], args[1])
			if err != nil {
				return fmt.Errorf("diff: %w", err)
			}
			if out == "" {
				fmt.Println(green("no differences"))
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newCacheCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the snapshot cache",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.CacheDSN)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer s.Close()

			snaps, err := s.List()
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			fmt.Printf("%s %s\n", bold("Cached snapshots"), cyan("("+cfg.CacheDSN+")"))
			for _, snap := range snaps {
				fmt.Printf("  %s/%d\n", snap.GameVersion, snap.ProtocolNumber)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	return cmd
}
