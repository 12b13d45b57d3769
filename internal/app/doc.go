// Package app implements the export use cases: collecting a user's library
// into a bundle, packaging it with its images, and driving export jobs from
// request to stored archive.
package app
