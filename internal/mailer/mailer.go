// Package mailer sends transactional auth emails through an HTTP mail
// provider. Dispatch from the auth flows is fire-and-forget; a failed send
// never fails the flow that triggered it.
package mailer

import (
	"context"
	"log"
	"time"
)

// sendTimeout is the max time allowed for a single async send.
const sendTimeout = 10 * time.Second

// Mailer sends the auth emails. Best-effort; callers use SendAsync and never
// block on delivery.
type Mailer interface {
	SendVerification(ctx context.Context, name, email, rawToken, locale string) error
	SendPasswordReset(ctx context.Context, name, email, rawToken, locale string) error
}

// SendAsync runs send in a goroutine with a timeout so the caller is not
// blocked. Errors are logged, never returned; the user can request a resend.
// The goroutine uses context.Background() so request cancellation does not
// abort an in-flight send.
func SendAsync(send func(ctx context.Context) error) {
	if send == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			log.Printf("mailer: async send failed: %v", err)
		}
	}()
}
