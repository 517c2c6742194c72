package events

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"go.uber.org/zap"
)

// StdoutWriter logs the events instead of sending them to a broker.
type StdoutWriter struct{}

func (s *StdoutWriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	zap.S().Named("stdout_writer").Infow("event wrote",
		"topic", topic,
		"id", e.ID(),
		"type", e.Type(),
		"data", string(e.Data()),
	)
	return nil
}

func (s *StdoutWriter) Close(_ context.Context) error {
	return nil
}

// DiscardWriter drops every event. Used when events are disabled.
type DiscardWriter struct{}

func (DiscardWriter) Write(context.Context, string, cloudevents.Event) error { return nil }
func (DiscardWriter) Close(context.Context) error                            { return nil }
