package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"sort"
	"time"

	"problem-solver/internal/config"
)

// Message is one outgoing HTML email
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail through an SMTP relay
type SMTPSender struct {
	config  config.EmailConfig
	timeout time.Duration
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SMTPSender{config: cfg, timeout: timeout}
}

// Send implements Sender. The whole SMTP conversation is bounded by the configured timeout.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := net.JoinHostPort(s.config.SMTPHost, s.config.SMTPPort)
	slog.Debug("Attempting to connect to SMTP server", "address", addr)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		slog.Error("Failed to connect to SMTP server", "address", addr, "error", err)
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func(conn net.Conn) {
		_ = conn.Close()
	}(conn)

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("failed to set SMTP deadline: %w", err)
		}
	}

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func(client *smtp.Client) {
		_ = client.Close()
	}(client)

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.config.SMTPHost, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	// Development relays such as Mailpit accept mail without auth
	if s.config.SMTPUsername != "" && s.config.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.config.SMTPFrom); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to initiate data transfer: %w", err)
	}
	if _, err := wc.Write(buildMessage(s.config.SMTPFrom, msg)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	// The server accepts the message only once DATA is terminated
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to complete data transfer: %w", err)
	}

	if err := client.Quit(); err != nil {
		slog.Debug("SMTP QUIT failed after successful send", "error", err)
	}

	slog.Info("Email sent successfully", "to", msg.To)
	return nil
}

func buildMessage(from string, msg Message) []byte {
	headers := map[string]string{
		"From":         from,
		"To":           msg.To,
		"Subject":      msg.Subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
		"Date":         time.Now().Format(time.RFC1123Z),
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var message bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&message, "%s: %s\r\n", k, headers[k])
	}
	message.WriteString("\r\n")
	message.WriteString(msg.HTMLBody)
	return message.Bytes()
}

// LogSender only logs messages. It is used when no SMTP host is configured.
type LogSender struct{}

// Send implements Sender
func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Info("Email delivery skipped, no SMTP host configured", "to", msg.To, "subject", msg.Subject, "bytes", len(msg.HTMLBody))
	return nil
}
