// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Sender delivers an OTP code to a voter. The OTP row is committed
// before Send is called, so a failed delivery leaves a valid-but-unknown
// code behind - harmless, the voter just requests another.
type Sender interface {
	Send(email, code string) error
}

// LogSender writes codes to the log instead of delivering them.
// Used in development and tests.
type LogSender struct{}

func (LogSender) Send(email, code string) error {
	slog.Info("OTP issued", "email", email, "code", code)
	return nil
}

// SMTPSender delivers codes over plain SMTP.
type SMTPSender struct {
	Addr string // host:port
	From string
}

func (s SMTPSender) Send(email, code string) error {
	host := s.Addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your voting passcode\r\n\r\n"+
			"Your one-time passcode is %s. It expires shortly and can only be used once.\r\n",
		s.From, email, code)

	if err := smtp.SendMail(s.Addr, nil, s.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
