// Package server holds the configuration of the HTTP status server
// started by the serve command. The server is a read-only operational
// surface over the key-mapping database; it never triggers catalog writes.
package server
