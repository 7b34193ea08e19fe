package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// BookingConfirmation is the content of the mail sent after a booking is paid.
type BookingConfirmation struct {
	To         string
	Name       string
	BookingID  uint
	HotelName  string
	CheckIn    time.Time
	CheckOut   time.Time
	Rooms      int
	TotalPrice float64
	Currency   string
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, msg BookingConfirmation) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer gửi email qua SMTP
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, msg BookingConfirmation) error {
	if msg.To == "" {
		return fmt.Errorf("booking %d: recipient is empty", msg.BookingID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body := RenderBookingConfirmation(msg)
	raw := []byte("MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"To: " + msg.To + "\r\n" +
		"Subject: Booking confirmed\r\n\r\n" + body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, []string{msg.To}, raw)
}

func RenderBookingConfirmation(msg BookingConfirmation) string {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		name = "guest"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Booking confirmed</title></head>
<body>
	<p>Hello %s,</p>
	<p>Your payment was received and your booking is confirmed.</p>
	<ul>
		<li>Booking: <strong>#%d</strong></li>
		<li>Hotel: <strong>%s</strong></li>
		<li>Check-in: <strong>%s</strong></li>
		<li>Check-out: <strong>%s</strong></li>
		<li>Rooms: <strong>%d</strong></li>
		<li>Total: <strong>%s %s</strong></li>
	</ul>
	<p>Thank you for booking with us.</p>
</body>
</html>`, name, msg.BookingID, msg.HotelName,
		msg.CheckIn.Format("2006-01-02"), msg.CheckOut.Format("2006-01-02"),
		msg.Rooms, formatCurrency(msg.TotalPrice), msg.Currency)
}

func formatCurrency(amount float64) string {
	return fmt.Sprintf("%0.2f", amount)
}

// Nop discards every message.
type Nop struct{}

func (Nop) SendBookingConfirmation(context.Context, BookingConfirmation) error { return nil }
