// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file, with defaults declared as struct tags on the partial config
// types owned by each package (source, catalog, database, storage, server,
// logger). Nested keys map to underscore-separated variables:
// catalog.key_identity becomes CATALOG_KEY_IDENTITY.
//
// Run-scoped import options (since version, duplicate policy, tag handling)
// are not configuration; they arrive as flags on the sync command.
package config
