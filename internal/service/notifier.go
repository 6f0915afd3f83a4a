package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/seat-booking/internal/queue"
	"github.com/iliyamo/seat-booking/internal/seating"
)

// LogNotifier writes booking results to the process log.
type LogNotifier struct{}

func (LogNotifier) Booked(_ context.Context, b Booking) error {
	log.Printf("booking: venue=%d ref=%s mode=%s %s", b.VenueID, b.Ref, b.Outcome.Mode, b.Message)
	return nil
}

func (LogNotifier) Rejected(_ context.Context, venueID uint64, capErr *seating.CapacityError) error {
	log.Printf("booking: venue=%d rejected: %s", venueID, capErr.UserMessage())
	return nil
}

// AMQPNotifier publishes booking results to RabbitMQ in addition to logging
// them.  Publishing dials a fresh connection per message; bookings are rare
// enough that a long-lived channel is not worth its reconnect logic.
type AMQPNotifier struct {
	URL string
	log LogNotifier
}

// NewAMQPNotifier returns a notifier publishing to the broker at url.
func NewAMQPNotifier(url string) *AMQPNotifier {
	return &AMQPNotifier{URL: url}
}

func (n *AMQPNotifier) Booked(ctx context.Context, b Booking) error {
	_ = n.log.Booked(ctx, b)
	return n.publish(ctx, queue.SeatsBookedQueue, queue.SeatsBookedEvent{
		BookingRef: b.Ref,
		VenueID:    b.VenueID,
		Mode:       string(b.Outcome.Mode),
		Seats:      b.Outcome.Seats,
		Message:    b.Message,
		BookedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *AMQPNotifier) Rejected(ctx context.Context, venueID uint64, capErr *seating.CapacityError) error {
	_ = n.log.Rejected(ctx, venueID, capErr)
	return n.publish(ctx, queue.SeatsRejectedQueue, queue.SeatsRejectedEvent{
		VenueID:    venueID,
		Available:  capErr.Available,
		Requested:  capErr.Requested,
		Message:    capErr.UserMessage(),
		RejectedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// publish sends event as a persistent JSON message to the named durable
// queue via the default exchange.  Errors are logged and returned.
func (n *AMQPNotifier) publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(n.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
