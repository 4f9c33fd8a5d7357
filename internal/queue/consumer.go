package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const auditLogPath = "logs/booking-audit.log"

// Consumer drains booking events and appends one line per event to the
// audit log file.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logPath string
}

func NewConsumer(address string) (*Consumer, error) {
	conn, err := amqp.Dial(address)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	_, err = channel.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring queue %s: %w", QueueName, err)
	}

	return &Consumer{conn: conn, channel: channel, logPath: auditLogPath}, nil
}

// Start blocks on the delivery stream until ctx is cancelled or the
// channel closes. Malformed messages are acked and skipped.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		QueueName,
		"booking-audit", // consumer tag
		false,           // autoAck
		false,           // exclusive
		false,           // noLocal
		false,           // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("starting consumer: %w", err)
	}

	log.Println("Booking audit consumer started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := c.handle(delivery.Body); err != nil {
				log.Printf("[ERROR] handling booking event: %v", err)
			}
			delivery.Ack(false)
		}
	}
}

func (c *Consumer) handle(body []byte) error {
	var event BookingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(c.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	line := fmt.Sprintf("%s %s booking=%d client=%d user=%s ref=%s\n",
		time.Unix(event.OccurredAt, 0).UTC().Format(time.RFC3339),
		event.Type, event.BookingID, event.ClientID, event.UserID, event.ReferenceCode,
	)
	_, err = file.WriteString(line)
	return err
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
