package usecase

import "time"

const (
	// InviteCodeLength is the number of characters in a generated invite code.
	InviteCodeLength = 6

	// DefaultInviteCodeTTL is how long an invite code stays redeemable.
	DefaultInviteCodeTTL = 24 * time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// ResultCacheTTL is how long a calculation snapshot is served from cache.
	ResultCacheTTL = 10 * time.Minute
)
