package service

import (
	"fmt"
	"time"

	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
)

// InviteLinker creates single-use, time-boxed invite links for the managed
// group.
type InviteLinker interface {
	CreateInviteLink(sessionID string, expireAt time.Time) (link string, err error)
}

// IssueInvites produces the invite artifact for a confirmed payment: a
// single-use Telegram invite link plus a verification code, stored under
// the session id.
//
// Duplicate webhook deliveries are a no-op once a link has been stored.
// A provider failure is captured in the artifact's Error field so the
// payment acknowledgment never depends on the provider being up; the next
// delivery of the same event retries and overwrites the error.
func IssueInvites(linker InviteLinker, sessionID string, plan model.Plan, email string) (model.InviteArtifact, error) {
	if sessionID == "" {
		return model.InviteArtifact{}, fmt.Errorf("IssueInvites: %w: empty session id", model.InvalidInputErr)
	}
	if existing, err := GetArtifact(sessionID); err == nil && existing.TelegramLink != "" {
		log.Info("IssueInvites: artifact for session %v already issued, skipping", sessionID)
		return existing, nil
	}
	link, lerr := linker.CreateInviteLink(sessionID, time.Now().Add(model.ArtifactTTL))
	if lerr != nil {
		log.Warn("IssueInvites: create invite link for session %v: %v", sessionID, lerr)
		return StoreArtifact(model.InviteArtifact{
			SessionID: sessionID,
			Plan:      plan,
			Error:     fmt.Sprintf("generate invite link: %v", lerr),
		})
	}
	code, err := NewCode(sessionID, plan, email)
	if err != nil {
		return model.InviteArtifact{}, err
	}
	a, err := StoreArtifact(model.InviteArtifact{
		SessionID:    sessionID,
		TelegramLink: link,
		DiscordCode:  code,
		Plan:         plan,
	})
	if err != nil {
		return model.InviteArtifact{}, err
	}
	log.Info("IssueInvites: issued artifact for session %v (plan %v)", sessionID, plan)
	return a, nil
}
