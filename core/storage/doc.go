// Package storage provides the object-storage client behind the optional
// attachment archive.
//
// When an archive bucket is configured, the importer keeps a copy of every
// attachment file it links into the catalog, so the library survives the
// source account being pruned. The Client interface is the narrow slice of
// S3-compatible operations the archiver needs; the mocks subpackage holds
// a testify mock for tests.
package storage
