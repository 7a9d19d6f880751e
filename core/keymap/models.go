package keymap

import "time"

// ImportRun is one synchronization run. UID is the externally visible
// identifier used for log correlation and the runs API.
type ImportRun struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UID            string `gorm:"size:36;uniqueIndex" json:"uid"`
	StartedAt      time.Time `json:"started_at"`
	SinceVersion   int       `json:"since_version"`
	SinceTimestamp int64     `json:"since_timestamp"`
}

// TableName overrides the table name.
func (ImportRun) TableName() string {
	return "import_runs"
}

// ImportRecord associates a source item key with the catalog item created
// or updated for it. Rows are append-only: re-imports under the "create"
// policy add rows rather than mutating, and lookups shadow the duplicates
// by keeping only the earliest row per key.
type ImportRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     uint      `gorm:"index" json:"run_id"`
	SourceKey string    `gorm:"size:32;index" json:"source_key"`
	TargetID  int       `gorm:"index" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name.
func (ImportRecord) TableName() string {
	return "import_records"
}

// RunSummary is an import run with its record count, as exposed by the
// runs API.
type RunSummary struct {
	ImportRun
	RecordCount int64 `json:"record_count"`
}
