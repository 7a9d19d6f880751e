// Package importer implements the incremental import feature.
//
// It drives one synchronization run end to end: listing the source
// items changed since the last run, fetching them in chunks,
// translating them into catalog item payloads, and writing the
// payloads out while recording every source-key-to-item association in
// the key map.
//
// # Components
//
//   - Engine: Orchestrates a run and owns its summary.
//   - Translator: Maps one source record (plus its attachment children)
//     to a catalog item using the resolved vocabulary terms.
//   - TagMaterializer: Gets or creates one catalog item per distinct
//     free-text tag when tags are imported as items.
//   - Archiver: Keeps a copy of attachment files in object storage.
//
// # Error Handling
//
// Catalog validation failures are recovered per record: the record is
// skipped, logged and counted in the summary. Transport failures and
// server errors abort the run. Cancellation between chunks ends the run
// cleanly with the summary marked incomplete; writes that already
// happened stay written.
package importer
