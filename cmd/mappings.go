package cmd

import (
	"context"
	"fmt"
	"sort"

	"refsync/core/catalog"
	"refsync/core/config"
	"refsync/core/logger"
	"refsync/core/mapping"
	"refsync/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mappingsCmd resolves the translation tables against the live catalog
// and reports which source keys would survive an import.
var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Show how source data maps onto the catalog's vocabularies",
	Long: `Resolves the item type, field and creator role tables against the
vocabularies registered in the catalog and prints the outcome. Source
keys without a registered candidate term are dropped during import;
this command shows which ones before any data moves.`,
	RunE: runMappings,
}

func init() {
	RootCmd.AddCommand(mappingsCmd)
}

func runMappings(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	api := catalog.NewClient(cfg.Catalog, l)
	properties, err := api.Properties(ctx)
	if err != nil {
		return fmt.Errorf("failed to list catalog properties: %w", err)
	}
	classes, err := api.ResourceClasses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list catalog resource classes: %w", err)
	}

	terms := importer.ResolveTerms(properties, classes)
	printResolved(l, "item types", mapping.ItemTypeMap, terms.ItemTypes)
	printResolved(l, "fields", mapping.ItemFieldMap, terms.Fields)
	printResolved(l, "creator roles", mapping.CreatorTypeMap, terms.Creators)
	return nil
}

// printResolved logs one table's outcome, resolved keys first.
func printResolved(l *zap.Logger, name string, raw mapping.RawMap, resolved mapping.Resolved) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	dropped := make([]string, 0)
	for _, key := range keys {
		term, ok := resolved[key]
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		l.Info("Mapped", zap.String("table", name), zap.String("key", key), zap.String("term", term.String()))
	}
	if len(dropped) > 0 {
		l.Warn("Dropped, no registered candidate term", zap.String("table", name), zap.Strings("keys", dropped))
	}
}
