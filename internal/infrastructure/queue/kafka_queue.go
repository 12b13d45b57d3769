package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	sdk "github.com/segmentio/kafka-go"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// KafkaTaskQueue publishes tasks to a topic and consumes them as part of a consumer group.
// The reader is created by the first Consume call so that producers never join the group.
type KafkaTaskQueue struct {
	brokers []string
	topic   string
	groupID string
	logger  logger.Logger

	writer *sdk.Writer

	mu     sync.Mutex
	reader *sdk.Reader
	closed bool
}

// NewKafkaTaskQueue returns a queue for the configured brokers and topic
func NewKafkaTaskQueue(settings *config.QueueSettings, logger logger.Logger) *KafkaTaskQueue {
	return &KafkaTaskQueue{
		brokers: settings.Brokers,
		topic:   settings.Topic,
		groupID: settings.GroupID,
		logger:  logger,
		writer: &sdk.Writer{
			Addr:                   sdk.TCP(settings.Brokers...),
			Topic:                  settings.Topic,
			RequiredAcks:           sdk.RequireAll,
			Balancer:               &sdk.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Enqueue writes the task keyed by its job ID
func (q *KafkaTaskQueue) Enqueue(ctx context.Context, task *exports.ExportTask) error {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return exports.ErrQueueClosed
	}

	value, err := task.Encode()
	if err != nil {
		return err
	}

	err = q.writer.WriteMessages(ctx, sdk.Message{
		Key:   []byte(task.JobID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish export task: %w", err)
	}

	q.logger.Debug("Published export task", "job_id", task.JobID, "topic", q.topic)
	return nil
}

// Consume fetches tasks one at a time and commits each after the handler returned.
// Undecodable messages are logged and committed.
func (q *KafkaTaskQueue) Consume(ctx context.Context, handler exports.TaskHandler) error {
	reader, err := q.openReader()
	if err != nil {
		return err
	}

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to fetch export task: %w", err)
		}

		task, err := exports.DecodeExportTask(msg.Value)
		if err != nil {
			q.logger.Error("Dropping malformed export task", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		} else if err := handler(ctx, task); err != nil {
			q.logger.Error("Export task failed", "job_id", task.JobID, "error", err)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to commit export task: %w", err)
		}
	}
}

func (q *KafkaTaskQueue) openReader() (*sdk.Reader, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, exports.ErrQueueClosed
	}
	if q.reader == nil {
		q.reader = sdk.NewReader(sdk.ReaderConfig{
			Brokers: q.brokers,
			Topic:   q.topic,
			GroupID: q.groupID,
		})
	}
	return q.reader, nil
}

// Close flushes the writer and leaves the consumer group
func (q *KafkaTaskQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	var errs []error
	if q.reader != nil {
		errs = append(errs, q.reader.Close())
	}
	errs = append(errs, q.writer.Close())
	return errors.Join(errs...)
}

var _ exports.TaskQueue = (*KafkaTaskQueue)(nil)
