// Package connector provides blob store implementations for media files and
// export archives, backed by the local filesystem or Azure Blob Storage.
package connector
