// Package keymap owns the persistent association between source item keys
// and catalog item ids, the memory that makes imports idempotent.
//
// Two tables back it: import_runs (one row per synchronization) and
// import_records (one row per successfully written parent item, linked to
// its run). Both are append-only. Under the "replace" duplicate policy the
// sync engine consults FindTargetIDs to decide which fetched parents
// already exist in the catalog; under "create" the store is bypassed and
// every parent is treated as new, which may leave several rows for one
// source key. Lookups resolve such duplicates by earliest row, so the
// first import of a key stays authoritative forever.
package keymap
