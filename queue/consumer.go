package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbooking/services/logger"
	"hotelbooking/services/mail"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer reads booking.confirmed and sends the confirmation mail.
type Consumer struct {
	url     string
	mailer  mail.Mailer
	logger  logger.Logger
	timeout time.Duration
}

func NewConsumer(url string, mailer mail.Mailer, log logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop{}
	}
	return &Consumer{url: url, mailer: mailer, logger: log, timeout: 30 * time.Second}
}

// Run dials the broker and consumes until ctx is done, reconnecting with
// exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("booking-consumer: dial failed: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("booking-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		c.logger.Warn("booking-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(BookingConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(ctx, d.Body); err != nil {
				c.logger.Error("booking-consumer: handle message failed: %v", err)
				// không requeue để tránh vòng lặp
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle processes one delivery body.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.UserEmail == "" {
		c.logger.Warn("booking-consumer: booking %d has no recipient, skipped", ev.BookingID)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.mailer.SendBookingConfirmation(ctx, mail.BookingConfirmation{
		To:         ev.UserEmail,
		Name:       ev.UserName,
		BookingID:  ev.BookingID,
		HotelName:  ev.HotelName,
		CheckIn:    ev.CheckIn,
		CheckOut:   ev.CheckOut,
		Rooms:      ev.Rooms,
		TotalPrice: ev.TotalPrice,
		Currency:   ev.Currency,
	})
	if err != nil {
		return fmt.Errorf("send mail for booking %d: %w", ev.BookingID, err)
	}
	c.logger.Info("booking-consumer: confirmation sent for booking %d", ev.BookingID)
	return nil
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
