// Package mail is the outbound-mail collaborator boundary. Delivery is
// best-effort; callers decide whether a failure may surface.
package mail

import (
    "context"
    "fmt"
    "log/slog"
    "net"
    "net/smtp"
    "strings"
    "time"
)

type Sender interface {
    Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender delivers through a plain SMTP endpoint with a bounded dial.
type SMTPSender struct {
    Addr    string
    From    string
    Timeout time.Duration
}

func NewSMTPSender(addr, from string) *SMTPSender {
    return &SMTPSender{Addr: addr, From: from, Timeout: 10 * time.Second}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
    timeout := s.Timeout
    if deadline, ok := ctx.Deadline(); ok {
        if d := time.Until(deadline); d < timeout {
            timeout = d
        }
    }

    conn, err := net.DialTimeout("tcp", s.Addr, timeout)
    if err != nil {
        return fmt.Errorf("dial smtp: %w", err)
    }
    defer conn.Close()
    _ = conn.SetDeadline(time.Now().Add(timeout))

    host := s.Addr
    if h, _, err := net.SplitHostPort(s.Addr); err == nil {
        host = h
    }

    c, err := smtp.NewClient(conn, host)
    if err != nil {
        return fmt.Errorf("smtp handshake: %w", err)
    }
    defer c.Close()

    if err := c.Mail(s.From); err != nil {
        return fmt.Errorf("smtp mail: %w", err)
    }
    if err := c.Rcpt(to); err != nil {
        return fmt.Errorf("smtp rcpt: %w", err)
    }
    w, err := c.Data()
    if err != nil {
        return fmt.Errorf("smtp data: %w", err)
    }

    msg := strings.Join([]string{
        "From: " + s.From,
        "To: " + to,
        "Subject: " + subject,
        "",
        body,
    }, "\r\n")
    if _, err := w.Write([]byte(msg)); err != nil {
        return fmt.Errorf("smtp write: %w", err)
    }
    if err := w.Close(); err != nil {
        return fmt.Errorf("smtp close: %w", err)
    }
    return c.Quit()
}

// LogSender is the fallback when no SMTP endpoint is configured: messages
// are logged instead of delivered so local development still shows reset
// links.
type LogSender struct {
    Log *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
    s.Log.InfoContext(ctx, "mail not configured, logging message", "to", to, "subject", subject, "body", body)
    return nil
}
