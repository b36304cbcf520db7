package redis

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpTTL = 10 * time.Minute

// OTPStore keeps one-time passcodes in Redis with a TTL, so codes expire on
// their own and survive nothing they shouldn't. Key format: otp:<email>
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Set stores the code for email, replacing any outstanding one.
func (s *OTPStore) Set(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, s.key(email), code, otpTTL).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

// Consume atomically fetches-and-deletes the stored code and reports whether
// it matched. A missing or expired code is a mismatch, not an error, and any
// outstanding code is burned by the attempt.
func (s *OTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.GetDel(ctx, s.key(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1, nil
}

func (s *OTPStore) key(email string) string {
	return "otp:" + email
}
