// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to read the library tables an export is
// assembled from and to store export job state.
package persistence
