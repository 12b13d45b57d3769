// Package library defines the rows of the reading-tracker schema that a user
// export is assembled from: users, books and editions, shelves, lists,
// statuses, reading progress and the follow/block graph.
package library
