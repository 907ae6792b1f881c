// Package mailer renders and delivers campaign emails. The Sender
// interface abstracts the delivery channel (SES in production, a log
// sender in development); errors are classified so the send worker can
// tell a bad recipient from a throttled API call.
package mailer

import (
	"context"
	"errors"
)

// Message is one fully rendered email ready for delivery.
type Message struct {
	FromName  string
	FromEmail string
	ReplyTo   string
	To        string
	Subject   string
	HTMLBody  string
	TextBody  string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Failure classes. Permanent failures burn the send; transient and
// unknown ones requeue it while attempts remain.
var (
	ErrPermanent = errors.New("permanent delivery failure")
	ErrTransient = errors.New("transient delivery failure")
)

// Permanent wraps err as a permanent failure.
func Permanent(err error) error {
	return &classifiedError{class: ErrPermanent, err: err}
}

// Transient wraps err as a transient failure.
func Transient(err error) error {
	return &classifiedError{class: ErrTransient, err: err}
}

// IsPermanent reports whether err is a permanent delivery failure.
// Unclassified errors are treated as transient so the system errs toward
// retrying rather than dropping mail.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}

type classifiedError struct {
	class error
	err   error
}

func (e *classifiedError) Error() string { return e.err.Error() }
func (e *classifiedError) Unwrap() error { return e.err }

func (e *classifiedError) Is(target error) bool { return target == e.class }
