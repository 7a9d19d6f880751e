// Package runs exposes the recorded import runs over HTTP.
//
// Every synchronization run leaves a row in the key map database; this
// feature serves those rows so operators can see when the catalog was
// last synchronized and how much each run touched.
//
// # HTTP Endpoints
//
//   - GET /health : Service liveness.
//   - GET /runs   : Recent import runs, newest first. The optional
//     "limit" query parameter bounds the listing.
package runs
