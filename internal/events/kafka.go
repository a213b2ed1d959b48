package events

import (
	"context"
	"log"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

var _ Publisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	writer *kafkaGo.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ProductChanged) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewReader crea un consumidor que arranca desde el final del tópico
func NewReader(brokers []string, topic, groupID string) *kafkaGo.Reader {
	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafkaGo.LastOffset,
	})
}

// MessageReader lo implementa *kafka.Reader
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafkaGo.Message, error)
}

type Handler func(ctx context.Context, event ProductChanged) error

// Consume lee mensajes hasta que se cancele el contexto. Los errores se registran y se sigue.
func Consume(ctx context.Context, reader MessageReader, handler Handler) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("🛑 Catalog events consumer shutting down")
				return
			}
			log.Println("⚠️ Error reading catalog event:", err)
			continue
		}

		event, err := Decode(msg)
		if err != nil {
			log.Println("⚠️ Skipping malformed catalog event:", err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("⚠️ Error handling catalog event %s/%s: %v", event.ID, event.Action, err)
		}
	}
}
