package snsd

import (
	"context"

	"github.com/segmentio/kafka-go"
)

const EnvelopeTopic = "sns_envelope"

// KWriter publishes envelope events to the stream consumers (indexers,
// notification bots). An empty broker URI disables publishing.
type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KWriter{w: w}, nil
}

func (kw *KWriter) Write(body []byte) error {
	return kw.w.WriteMessages(
		context.Background(),
		kafka.Message{Value: body},
	)
}

func (kw *KWriter) Close() {
	kw.w.Close()
}
