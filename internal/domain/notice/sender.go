// internal/domain/notice/sender.go
package notice

import "context"

// Sender delivers a rendered notice to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
