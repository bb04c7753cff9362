// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

/*
Package mail provides the outbound mail transport used for confirmation codes.

It exposes a narrow [Mailer] interface so the auth service never depends on a
concrete SMTP client, plus two implementations:

  - SMTPMailer: production delivery via wneessen/go-mail.
  - LogMailer: development fallback that writes the message to the log.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Mailer dispatches a plain-text message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # SMTP Transport

// SMTPMailer delivers mail through an authenticated SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// Options holds the SMTP connection settings.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPMailer constructs an [SMTPMailer] from connection options.
func NewSMTPMailer(opts Options) (*SMTPMailer, error) {
	client, err := gomail.NewClient(opts.Host,
		gomail.WithPort(opts.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(opts.Username),
		gomail.WithPassword(opts.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: opts.From}, nil
}

// Send delivers a plain-text message to a single recipient.
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	message := gomail.NewMsg()

	if err := message.From(mailer.from); err != nil {
		return fmt.Errorf("mail: invalid sender address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mail: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextPlain, body)

	if err := mailer.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mail: failed to send message: %w", err)
	}

	return nil
}

// # Development Transport

// LogMailer writes outgoing mail to the structured log instead of delivering it.
//
// Used when no SMTP host is configured so that local signup flows still work;
// the confirmation code can be read from the server log.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message instead of dispatching it.
func (mailer *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
