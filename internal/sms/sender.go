// Package sms abstracts the outbound SMS transport. Sends may fail
// transiently; the dispatch pipeline decides what a failure means.
package sms

import "context"

// Sender sends one SMS message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, to, from, text string) error
}
