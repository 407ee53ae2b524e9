package model

import "time"

const (
	BucketArtifact = "artifact"

	// ArtifactTTL bounds how long unclaimed invite artifacts are kept.
	ArtifactTTL = 24 * time.Hour
	// SessionReplayWindow bounds how long after checkout the success page
	// may fetch the artifact.
	SessionReplayWindow = 15 * time.Minute
	// CorrelationWindow bounds how old an artifact may be to still be
	// matched against a member joining the group.
	CorrelationWindow = 10 * time.Minute
)

// InviteArtifact is the pair of access credentials generated for one paid
// checkout session: a single-use Telegram invite link and a Discord
// verification code. It is read destructively exactly once.
type InviteArtifact struct {
	SessionID    string
	TelegramLink string
	DiscordCode  string
	Plan         Plan
	CreatedAt    time.Time
	// LinkRevoked is set once the invite link has been revoked after a
	// member joined through it.
	LinkRevoked bool
	// Error carries the upstream failure of a generation attempt. A retry
	// overwrites it.
	Error string
}
