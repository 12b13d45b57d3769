// Package queue provides task queues that carry export tasks from the API to
// workers: an in-process channel queue and a Kafka topic with a consumer group.
package queue
