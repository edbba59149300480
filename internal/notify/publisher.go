package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"fayclick/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the topic exchange carrying payment events.
	ExchangeName = "fayclick.payments"
	exchangeType = "topic"
)

// Publisher emits payment events on a RabbitMQ topic exchange so that
// downstream consumers (SMS receipts, accounting export) can react to
// settlements without the API waiting on them.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect dials the broker and declares the payments exchange. Brokers in
// container setups come up slower than the API, so dialing retries briefly.
func Connect(url string, logger *log.Logger) (*Publisher, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		if logger != nil {
			logger.Printf("amqp dial attempt %d: %v", i+1, err)
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// encashmentEvent is the wire form of a settlement notification.
type encashmentEvent struct {
	ReceiptNumber string `json:"receiptNumber"`
	InvoiceID     string `json:"invoiceId"`
	InvoiceNumber string `json:"invoiceNumber"`
	StructureID   string `json:"structureId"`
	Method        string `json:"method"`
	Amount        int64  `json:"amount"`
	Phone         string `json:"phone,omitempty"`
	TxRef         string `json:"txRef,omitempty"`
	RecordedAt    string `json:"recordedAt"`
}

// EncashmentRecorded publishes a settlement with routing key
// payments.<method>.completed (e.g. payments.om.completed).
func (p *Publisher) EncashmentRecorded(ctx context.Context, enc domain.Encashment, invoiceNumber string) error {
	body, err := json.Marshal(encashmentEvent{
		ReceiptNumber: enc.ReceiptNumber,
		InvoiceID:     enc.InvoiceID,
		InvoiceNumber: invoiceNumber,
		StructureID:   enc.StructureID,
		Method:        string(enc.Method),
		Amount:        enc.Amount,
		Phone:         enc.Phone,
		TxRef:         enc.TxRef,
		RecordedAt:    enc.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal encashment event: %w", err)
	}

	routingKey := fmt.Sprintf("payments.%s.completed", strings.ToLower(string(enc.Method)))

	return p.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
