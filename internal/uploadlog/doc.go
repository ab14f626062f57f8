// Package uploadlog keeps a local SQLite history of uploads started from the
// CLI and serializes concurrent uploads of the same source file with an
// advisory file lock.
//
// The history is informational only. Uploads are never resumed from it.
package uploadlog
