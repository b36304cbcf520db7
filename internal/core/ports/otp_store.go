package ports

import "context"

// OTPStore holds short-lived one-time passcodes keyed by email. Entries
// expire on their own; a successful Consume removes the code so it can be
// used at most once.
type OTPStore interface {
	Set(ctx context.Context, email, code string) error
	// Consume atomically fetches-and-deletes the stored code and reports
	// whether it matched. A missing or expired code is simply a mismatch.
	Consume(ctx context.Context, email, code string) (bool, error)
}
