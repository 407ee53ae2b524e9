package model

import "time"

const (
	BucketCode = "code"
	// BucketCodeIndex maps a checkout session id to its code.
	BucketCodeIndex = "codeIndex"

	CodeLength = 6
	CodeTTL    = 24 * time.Hour
)

// VerificationCode binds a paid checkout session to a plan. It is redeemed
// at most once by a Discord user in exchange for a role grant.
type VerificationCode struct {
	Code       string
	SessionID  string
	Plan       Plan
	Email      string
	CreatedAt  time.Time
	Used       bool
	RedeemedBy string
}
