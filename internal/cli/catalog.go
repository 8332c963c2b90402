package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wayfinder-support/wayfinder/internal/catalog"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate resource catalogues",
	Long: `Catalog works with the resource and knowledge catalogue the
assistant draws answers from: the embedded seed by default, or an
external YAML file.

Example:
  wayfinder catalog show
  wayfinder catalog validate my-catalogue.yaml`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show catalogue counts and version",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, origin, err := resolveStore(args)
		if err != nil {
			return err
		}

		resources, knowledge := store.Counts()
		fmt.Printf("Catalogue: %s\n", origin)
		fmt.Printf("  version:   %d\n", store.Version())
		fmt.Printf("  resources: %d\n", resources)
		fmt.Printf("  knowledge: %d\n", knowledge)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an external catalogue YAML file",
	Long: `Validate parses a catalogue file and reports every referential
problem: duplicate ids, unknown stages or locations, bad enum values,
missing timestamps. A catalogue that passes here will load cleanly
with --catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read catalogue: %w", err)
		}

		store, err := catalog.Load(data)
		if err != nil {
			// Load already validates; re-run to list every problem
			// instead of only the first.
			if partial, perr := catalog.LoadUnchecked(data); perr == nil {
				for _, problem := range partial.Validate() {
					fmt.Fprintf(os.Stderr, "  ✗ %s\n", problem)
				}
			}
			return fmt.Errorf("catalogue invalid: %w", err)
		}

		resources, knowledge := store.Counts()
		fmt.Printf("✓ %s is valid (%d resources, %d knowledge entries)\n", args[0], resources, knowledge)
		return nil
	},
}

func resolveStore(args []string) (*catalog.Store, string, error) {
	if len(args) == 1 {
		store, err := catalog.LoadFile(args[0])
		if err != nil {
			return nil, "", err
		}
		return store, args[0], nil
	}
	if path := buildConfig().Catalog.Path; path != "" {
		store, err := catalog.LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		return store, path, nil
	}
	return catalog.Default(), "embedded seed", nil
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
