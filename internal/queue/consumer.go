package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the seats.booked and
// seats.rejected queues (durable) and appends every message to
// <dir>/booking.log as one line.  It reconnects with exponential backoff and
// only returns when ctx is cancelled.
func StartBookingConsumer(ctx context.Context, url, dir string) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, dir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, dir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	booked, err := declareAndConsume(ch, SeatsBookedQueue)
	if err != nil {
		return err
	}
	rejected, err := declareAndConsume(ch, SeatsRejectedQueue)
	if err != nil {
		return err
	}

	for {
		var (
			d  amqp.Delivery
			ok bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-booked:
		case d, ok = <-rejected:
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		line, err := FormatLine(d.RoutingKey, d.Body)
		if err == nil {
			err = appendLine(dir, line)
		}
		if err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func declareAndConsume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

// FormatLine renders a broker message as a single booking.log line.  The
// routing key selects the payload type.
func FormatLine(routingKey string, body []byte) (string, error) {
	switch routingKey {
	case SeatsBookedQueue:
		var ev SeatsBookedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		nums := make([]string, len(ev.Seats))
		for i, n := range ev.Seats {
			nums[i] = strconv.Itoa(n)
		}
		return fmt.Sprintf("[%s] Seats booked | ref=%s | venue_id=%d | mode=%s | seats=[%s]\n",
			ev.BookedAt, ev.BookingRef, ev.VenueID, ev.Mode, strings.Join(nums, ",")), nil
	case SeatsRejectedQueue:
		var ev SeatsRejectedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] Booking rejected | venue_id=%d | available=%d | requested=%d\n",
			ev.RejectedAt, ev.VenueID, ev.Available, ev.Requested), nil
	}
	return "", fmt.Errorf("unknown routing key %q", routingKey)
}

func appendLine(dir, line string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
