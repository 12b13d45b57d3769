package queue

import (
	"fmt"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// NewTaskQueue creates the task queue selected by settings.Type
func NewTaskQueue(settings *config.QueueSettings, logger logger.Logger) (exports.TaskQueue, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Type {
	case config.MemoryQueueType:
		return NewMemoryTaskQueue(settings.BufferSize, settings.Workers, logger), nil
	case config.KafkaQueueType:
		return NewKafkaTaskQueue(settings, logger), nil
	default:
		return nil, fmt.Errorf("unsupported queue type: %s", settings.Type)
	}
}
