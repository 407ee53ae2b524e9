package model

import "time"

const (
	BucketMember = "member"

	// MonthlyDuration is intentionally longer than a calendar month to
	// leave room for late renewal payments.
	MonthlyDuration = 32 * 24 * time.Hour
	// InactiveRetention is how long deactivated members are kept before
	// the cleaner drops them.
	InactiveRetention = 30 * 24 * time.Hour
	// KickCooldown is how long a kicked member stays banned. After it they
	// can rejoin through a fresh invite if they pay again.
	KickCooldown = 60 * time.Second
)

// Member is a tracked subscriber of the Telegram group.
type Member struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	Plan      Plan
	JoinedAt  time.Time
	// SubscriptionEnd is zero for lifetime members.
	SubscriptionStart time.Time
	SubscriptionEnd   time.Time
	// SessionID is the checkout session the membership originated from.
	SessionID         string
	Active            bool
	DeactivatedReason string
	LastChecked       time.Time
}

// Lapsed reports whether the membership window has ended. Lifetime members
// never lapse.
func (m *Member) Lapsed(now time.Time) bool {
	if m.Plan != PlanMonthly {
		return false
	}
	return !m.SubscriptionEnd.IsZero() && now.After(m.SubscriptionEnd)
}

type MemberStats struct {
	Total    int
	Active   int
	Monthly  int
	Lifetime int
	Expired  int
	Inactive int
}
