// Package events publica y consume cambios del catálogo para que cada instancia
// invalide sus cachés cuando otra modifica un producto.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

const eventTypeHeader = "event-type"

const productChangedType = "product.changed"

// ProductChanged se emite tras cada alta, edición o baja de un producto
type ProductChanged struct {
	ID     string    `json:"id"`
	Action Action    `json:"action"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Publisher envía eventos de catálogo
type Publisher interface {
	Publish(ctx context.Context, event ProductChanged) error
	Close() error
}

// Message arma el mensaje de Kafka; la clave es el ID para mantener el orden por producto
func Message(event ProductChanged) (kafkaGo.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafkaGo.Message{
		Key:   []byte(event.ID),
		Value: payload,
		Headers: []kafkaGo.Header{
			{Key: eventTypeHeader, Value: []byte(productChangedType)},
		},
	}, nil
}

// Decode lee un ProductChanged de un mensaje
func Decode(msg kafkaGo.Message) (ProductChanged, error) {
	for _, h := range msg.Headers {
		if h.Key == eventTypeHeader && string(h.Value) != productChangedType {
			return ProductChanged{}, fmt.Errorf("unexpected event type %q", h.Value)
		}
	}

	var event ProductChanged
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ProductChanged{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.ID == "" {
		return ProductChanged{}, fmt.Errorf("event without product id")
	}
	return event, nil
}

// Noop descarta los eventos; se usa cuando no hay brokers configurados
type Noop struct{}

func (Noop) Publish(context.Context, ProductChanged) error { return nil }

func (Noop) Close() error { return nil }
