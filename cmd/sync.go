package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"refsync/core/catalog"
	"refsync/core/config"
	"refsync/core/database"
	"refsync/core/keymap"
	"refsync/core/logger"
	"refsync/core/source"
	"refsync/core/storage"
	"refsync/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncItemSet      int
	syncCollection   string
	syncSinceVersion int
	syncSince        string
	syncAction       string
	syncFiles        bool
	syncNameOrder    string
	syncTagLanguage  string
	syncTagItems     bool
	syncTagConcepts  bool
	syncTagMainItem  int
	syncTagItemSet   int
)

// syncCmd runs one incremental import from the source library into the
// catalog.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one incremental import into the catalog",
	Long: `Runs one synchronization: lists the source items changed since the
given library version, fetches them, translates them onto the catalog's
registered vocabulary terms and writes them out.

Examples:
  # First import of a collection into item set 5
  refsync sync --item-set 5 --collection AB2CD3EF

  # Incremental follow-up, updating previously imported items in place
  refsync sync --item-set 5 --since-version 1432 --action replace

  # Import attachment files too (requires a source API key)
  refsync sync --item-set 5 --files`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncItemSet, "item-set", 0, "Catalog item set to import into (required)")
	syncCmd.Flags().StringVar(&syncCollection, "collection", "", "Restrict the import to one source collection key")
	syncCmd.Flags().IntVar(&syncSinceVersion, "since-version", 0, "Source library version of the last import")
	syncCmd.Flags().StringVar(&syncSince, "since", "", "Discard records added before this RFC 3339 timestamp")
	syncCmd.Flags().StringVar(&syncAction, "action", "create", "Duplicate policy: create or replace")
	syncCmd.Flags().BoolVar(&syncFiles, "files", false, "Import attachment files (requires a source API key)")
	syncCmd.Flags().StringVar(&syncNameOrder, "name-order", "first", "Creator name order: first, last or last_comma")
	syncCmd.Flags().StringVar(&syncTagLanguage, "tag-language", "", "Language tag for subject values")
	syncCmd.Flags().BoolVar(&syncTagItems, "tag-items", false, "Materialize tags as catalog items instead of literals")
	syncCmd.Flags().BoolVar(&syncTagConcepts, "tag-concepts", false, "Create tag items as thesaurus concepts when skos is registered")
	syncCmd.Flags().IntVar(&syncTagMainItem, "tag-main-item", 0, "Relate new tag items to this main tag item")
	syncCmd.Flags().IntVar(&syncTagItemSet, "tag-item-set", 0, "Store new tag items in this item set")
	_ = syncCmd.MarkFlagRequired("item-set")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	// Stop cleanly between chunks on interrupt; already written items
	// stay written and mapped.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	opts, err := syncOptions()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	store := keymap.NewStore(db)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate key map schema: %w", err)
	}

	src := source.NewClient(cfg.Source, l)
	if opts.SyncFiles && !src.HasAPIKey() {
		return fmt.Errorf("--files requires a source API key")
	}
	api := catalog.NewClient(cfg.Catalog, l)

	var archiver *importer.Archiver
	if cfg.Storage.Enabled() {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		archiver = importer.NewArchiver(client, cfg.Storage.Bucket, l)
	}

	engine := importer.New(src, api, store, archiver, opts, l)
	summary, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	l.Info("Sync summary",
		zap.String("run_uid", summary.RunUID),
		zap.Int("listed", summary.Listed),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Bool("incomplete", summary.Incomplete),
	)
	return nil
}

// syncOptions turns the command flags into run options.
func syncOptions() (importer.Options, error) {
	opts := importer.Options{
		ItemSetID:       syncItemSet,
		CollectionKey:   syncCollection,
		SinceVersion:    syncSinceVersion,
		Policy:          importer.DuplicatePolicy(syncAction),
		SyncFiles:       syncFiles,
		NameOrder:       importer.NameOrder(syncNameOrder),
		TagLanguage:     syncTagLanguage,
		TagAsItem:       syncTagItems,
		TagAsConcept:    syncTagConcepts,
		TagParentItemID: syncTagMainItem,
		TagItemSetID:    syncTagItemSet,
	}
	if syncSince != "" {
		since, err := time.Parse(time.RFC3339, syncSince)
		if err != nil {
			return opts, fmt.Errorf("invalid --since timestamp: %w", err)
		}
		opts.SinceTimestamp = since
	}
	return opts, opts.Validate()
}
