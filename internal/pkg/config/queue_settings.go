package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// QueueSettings configures the task queue export jobs are dispatched through
type QueueSettings struct {
	Type       string   `mapstructure:"type" validate:"required,oneof=memory kafka"`
	Workers    int      `mapstructure:"workers" validate:"min=0,max=64"`
	BufferSize int      `mapstructure:"buffer_size" validate:"min=0"`
	Brokers    []string `mapstructure:"brokers" validate:"required_if=Type kafka"`
	Topic      string   `mapstructure:"topic" validate:"required_if=Type kafka"`
	GroupID    string   `mapstructure:"group_id"`
}

// Validate checks that all fields in QueueSettings are valid
func (s *QueueSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for QueueSettings: %w", err)
	}
	return nil
}
