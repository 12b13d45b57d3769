// Package models holds the GORM rows of the library tables and export jobs.
// Each row converts to its domain counterpart with ToDomain, export jobs also
// convert back with FromDomain.
package models
