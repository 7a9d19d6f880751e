// Package source is the HTTP client for the reference-management API the
// import reads from.
//
// The client is deliberately sequential: bulk endpoints are called in
// fixed-size chunks (the server caps bulk requests at 50 keys), one request
// at a time, which keeps memory bounded and respects the server's load
// expectations. The only suspension points are the blocking HTTP calls.
//
// # Responsibilities
//
//   - ChangedKeys: incremental listing of changed item keys since a library
//     version, ordered by dateAdded, following Link rel="next" pagination.
//   - FetchRecords: chunked bulk fetch, partitioning records into parents
//     and children by the parentItem reference.
//   - Children: single-page fetch of a record's attachments.
//   - DeleteItems / DeleteItem: unconditional deletes with a forced
//     precondition version.
//
// # Failure and cancellation
//
// A non-success response becomes a *RequestError carrying the URL, status
// line and body; it aborts the run, there is no automatic retry. Context
// cancellation is checked before every chunk request; accumulated partial
// results are returned together with the context error, and the caller
// treats the run as incomplete rather than failed.
package source
