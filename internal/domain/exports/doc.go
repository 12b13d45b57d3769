// Package exports defines user export jobs, the bundle an export produces and
// the contracts of the services, repositories and queues that drive them.
package exports
