package importer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refsync/core/catalog"
	"refsync/core/keymap"
	"refsync/core/logger"
	"refsync/core/source"
)

// writeChunkSize bounds the size of batch create requests.
const writeChunkSize = 50

// Source is the subset of source library operations a run needs.
type Source interface {
	ChangedKeys(ctx context.Context, collectionKey string, sinceVersion int) ([]string, error)
	FetchRecords(ctx context.Context, keys []string, since time.Time) (*source.FetchResult, error)
	URL() *source.URL
	APIKey() string
}

// Summary is the outcome of one run. Listed counts the keys the source
// reported as changed; Skipped counts records the catalog rejected or
// that failed translation. Incomplete marks a run stopped by
// cancellation before all writes went out; everything counted in it did
// happen.
type Summary struct {
	RunUID     string `json:"run_uid"`
	Listed     int    `json:"listed"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
	Incomplete bool   `json:"incomplete"`
}

// Engine drives one incremental synchronization run end to end:
// vocabulary resolution, change listing, fetching, translation and the
// chunked catalog writes, with the key mapping recorded as it goes.
type Engine struct {
	source   Source
	api      catalog.API
	store    *keymap.Store
	archiver *Archiver
	opts     Options
	log      *zap.Logger
}

// New creates an engine. archiver may be nil when attachment archiving
// is not configured.
func New(src Source, api catalog.API, store *keymap.Store, archiver *Archiver, opts Options, log *zap.Logger) *Engine {
	return &Engine{
		source:   src,
		api:      api,
		store:    store,
		archiver: archiver,
		opts:     opts,
		log:      log,
	}
}

// pending is one translated parent waiting to be written.
type pending struct {
	key  string
	id   int
	item *catalog.Item
}

// Run executes one synchronization run. Cancellation between chunks
// ends the run cleanly with Summary.Incomplete set; already written
// items stay written and mapped.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := e.api.ReadItemSet(ctx, e.opts.ItemSetID); err != nil {
		return nil, fmt.Errorf("reading item set %d: %w", e.opts.ItemSetID, err)
	}

	properties, err := e.api.Properties(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := e.api.ResourceClasses(ctx)
	if err != nil {
		return nil, err
	}
	terms := ResolveTerms(properties, classes)

	summary := &Summary{RunUID: uuid.NewString()}
	log := logger.WithRun(e.log, summary.RunUID)

	var tags *TagMaterializer
	if e.opts.TagAsItem {
		tags = NewTagMaterializer(e.api, terms, e.opts, log)
	}
	translator := NewTranslator(terms, e.opts, e.source.URL(), e.source.APIKey(), tags, log)

	keys, err := e.source.ChangedKeys(ctx, e.opts.CollectionKey, e.opts.SinceVersion)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("stopping before the listing finished, nothing was written")
			summary.Listed = len(keys)
			summary.Incomplete = true
			return summary, nil
		}
		return nil, err
	}
	summary.Listed = len(keys)
	log.Info("listed changed items", zap.Int("count", len(keys)))
	if len(keys) == 0 {
		return summary, nil
	}

	run := &keymap.ImportRun{
		UID:            summary.RunUID,
		StartedAt:      time.Now(),
		SinceVersion:   e.opts.SinceVersion,
		SinceTimestamp: e.opts.SinceTimestamp.Unix(),
	}
	if err := e.store.CreateRun(run); err != nil {
		return nil, err
	}

	fetch, err := e.source.FetchRecords(ctx, keys, e.opts.SinceTimestamp)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("stopping before the fetch finished, nothing was written")
			summary.Incomplete = true
			return summary, nil
		}
		return nil, err
	}

	existing := map[string]int{}
	if e.opts.Policy == PolicyReplace {
		existing, err = e.store.FindTargetIDs(fetch.ParentOrder)
		if err != nil {
			return nil, err
		}
	}

	archiver := e.archiver
	if archiver != nil {
		if err := archiver.EnsureBucket(ctx); err != nil {
			log.Warn("attachment archive unavailable", zap.Error(err))
			archiver = nil
		}
	}

	var creates, updates []pending
	for _, key := range fetch.ParentOrder {
		parent := fetch.Parents[key]
		children := fetch.Children[key]

		item, err := translator.Translate(ctx, parent, children)
		if err != nil {
			var invalid *catalog.ValidationError
			if errors.As(err, &invalid) {
				log.Warn("skipping item, translation rejected by catalog",
					zap.String("key", key), zap.Error(err))
				summary.Skipped++
				continue
			}
			return nil, err
		}
		if archiver != nil {
			e.archiveAttachments(ctx, archiver, log, parent, children)
		}

		if id, ok := existing[key]; ok {
			updates = append(updates, pending{key: key, id: id, item: item})
		} else {
			creates = append(creates, pending{key: key, item: item})
		}

		// release consumed records, large libraries would otherwise pin
		// the whole fetch in memory until the writes finish
		delete(fetch.Parents, key)
		delete(fetch.Children, key)
	}

	if err := e.writeCreates(ctx, log, summary, run.ID, creates); err != nil {
		return summary, err
	}
	if summary.Incomplete {
		return summary, nil
	}
	if err := e.writeUpdates(ctx, log, summary, updates); err != nil {
		return summary, err
	}

	log.Info("import finished",
		zap.Int("listed", summary.Listed),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Bool("incomplete", summary.Incomplete))
	return summary, nil
}

// writeCreates sends new items to the catalog in chunks. A rejected
// payload is skipped; the rest of its chunk still lands.
func (e *Engine) writeCreates(ctx context.Context, log *zap.Logger, summary *Summary, runID uint, creates []pending) error {
	for _, chunk := range chunkPending(creates, writeChunkSize) {
		if ctx.Err() != nil {
			log.Warn("stopping before all new items were written")
			summary.Incomplete = true
			return nil
		}

		items := make([]*catalog.Item, len(chunk))
		for i, p := range chunk {
			items[i] = p.item
		}
		created, err := e.api.BatchCreateItems(ctx, items)
		if err != nil {
			return err
		}

		rows := make([]keymap.ImportRecord, 0, len(chunk))
		for i, c := range created {
			if c == nil {
				log.Warn("catalog rejected item", zap.String("key", chunk[i].key))
				summary.Skipped++
				continue
			}
			rows = append(rows, keymap.ImportRecord{
				RunID:     runID,
				SourceKey: chunk[i].key,
				TargetID:  c.ID,
			})
			summary.Created++
		}
		if err := e.store.AppendRecords(rows); err != nil {
			return err
		}
	}
	return nil
}

// writeUpdates replaces existing items one by one. Updates are full
// replacements, so a rejected update leaves the old item intact and is
// only logged. The key mapping already points at these items; updating
// appends no new rows, keeping replace re-runs free of duplicates.
func (e *Engine) writeUpdates(ctx context.Context, log *zap.Logger, summary *Summary, updates []pending) error {
	for _, p := range updates {
		if ctx.Err() != nil {
			log.Warn("stopping before all updates were written")
			summary.Incomplete = true
			return nil
		}
		if _, err := e.api.UpdateItem(ctx, p.id, p.item); err != nil {
			var invalid *catalog.ValidationError
			if errors.As(err, &invalid) {
				log.Warn("catalog rejected update",
					zap.String("key", p.key), zap.Int("item_id", p.id), zap.Error(err))
				summary.Skipped++
				continue
			}
			return err
		}
		summary.Updated++
	}
	return nil
}

// archiveAttachments copies every downloadable attachment of a parent
// into the archive bucket. Failures are logged and never fail the run.
func (e *Engine) archiveAttachments(ctx context.Context, archiver *Archiver, log *zap.Logger, parent *source.Record, children []*source.Record) {
	records := make([]*source.Record, 0, len(children)+1)
	records = append(records, parent)
	records = append(records, children...)

	for _, r := range records {
		if !r.IsAttachment() || r.Links.Enclosure == nil {
			continue
		}
		filename := r.Links.Enclosure.Title
		if filename == "" {
			filename = r.Key
		}
		params := url.Values{}
		if key := e.source.APIKey(); key != "" {
			params.Set("key", key)
		}
		downloadURL := e.source.URL().ItemFile(r.Key, params)
		if err := archiver.Archive(ctx, r.Key, filename, downloadURL); err != nil {
			log.Warn("attachment archive failed", zap.String("key", r.Key), zap.Error(err))
		}
	}
}

func chunkPending(items []pending, size int) [][]pending {
	var chunks [][]pending
	for size < len(items) {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}
