// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer delivers OTP codes to voters.

The Sender interface is the delivery channel collaborator consumed by the
session handlers:

	type Sender interface {
		Send(email, code string) error
	}

Two implementations:

  - LogSender: logs the code via slog (development, tests)
  - SMTPSender: plain SMTP delivery via net/smtp

Delivery happens after the OTP row is committed. A delivery failure is
reported to the caller but the stored code remains valid until expiry;
since the code was never seen by anyone, this is harmless.
*/
package mailer
