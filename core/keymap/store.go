package keymap

import (
	"fmt"

	"gorm.io/gorm"
)

// appendBatchSize bounds insert statement sizes when appending records.
const appendBatchSize = 100

// lookupBatchSize bounds IN clause sizes on lookups; full-library runs
// carry tens of thousands of keys, more than sqlite's bound-variable
// limit allows in one statement.
const lookupBatchSize = 500

// Store reads and appends the persistent source-key to catalog-id
// mapping. The table is append-only; nothing here mutates or deletes.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an open database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the key-mapping tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&ImportRun{}, &ImportRecord{}); err != nil {
		return fmt.Errorf("failed to migrate key-mapping tables: %w", err)
	}
	return nil
}

// CreateRun inserts a new import run row.
func (s *Store) CreateRun(run *ImportRun) error {
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create import run: %w", err)
	}
	return nil
}

// AppendRecords appends key-mapping rows in batches.
func (s *Store) AppendRecords(records []ImportRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&records, appendBatchSize).Error; err != nil {
		return fmt.Errorf("failed to append key-mapping rows: %w", err)
	}
	return nil
}

// FindTargetIDs returns the catalog item ids of source keys that were
// already imported. When a key was imported more than once, only the
// earliest row counts; later duplicates are intentionally shadowed.
func (s *Store) FindTargetIDs(sourceKeys []string) (map[string]int, error) {
	if len(sourceKeys) == 0 {
		return map[string]int{}, nil
	}

	existing := make(map[string]int)
	for _, chunk := range chunkSlice(sourceKeys, lookupBatchSize) {
		var rows []ImportRecord
		err := s.db.
			Where("source_key IN ?", chunk).
			Order("id ASC").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to look up source keys: %w", err)
		}
		// Chunks cover disjoint keys, so the first-wins tie-break holds
		// across them.
		for _, row := range rows {
			if _, seen := existing[row.SourceKey]; !seen {
				existing[row.SourceKey] = row.TargetID
			}
		}
	}
	return existing, nil
}

// FindSourceKeys is the symmetric lookup: catalog item ids to source
// keys, same first-wins tie-break.
func (s *Store) FindSourceKeys(targetIDs []int) (map[int]string, error) {
	if len(targetIDs) == 0 {
		return map[int]string{}, nil
	}

	existing := make(map[int]string)
	for _, chunk := range chunkSlice(targetIDs, lookupBatchSize) {
		var rows []ImportRecord
		err := s.db.
			Where("target_id IN ?", chunk).
			Order("id ASC").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to look up target ids: %w", err)
		}
		for _, row := range rows {
			if _, seen := existing[row.TargetID]; !seen {
				existing[row.TargetID] = row.SourceKey
			}
		}
	}
	return existing, nil
}

func chunkSlice[T any](items []T, size int) [][]T {
	var chunks [][]T
	for size < len(items) {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

// RecentRuns lists the most recent import runs with their record counts.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []ImportRun
	if err := s.db.Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		var count int64
		if err := s.db.Model(&ImportRecord{}).Where("run_id = ?", run.ID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count records of run %d: %w", run.ID, err)
		}
		summaries = append(summaries, RunSummary{ImportRun: run, RecordCount: count})
	}
	return summaries, nil
}
