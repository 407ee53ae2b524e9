package telegram

import (
	"time"

	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/dreamzz-lol/gatekeeper/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

// UserJoined correlates a newly joined member to the payment that admitted
// them: the newest artifact with an outstanding invite link issued within
// the correlation window. This is a heuristic, not a guarantee; two
// purchases landing close together can be misattributed.
func (b *Bot) UserJoined(m *tb.Message) {
	u := m.UserJoined
	if u == nil || u.IsBot {
		return
	}
	log.Info("new member joined: %v (%v)", u.ID, u.Username)
	recent, err := service.RecentLinkedArtifacts(model.CorrelationWindow)
	if err != nil {
		log.Warn("UserJoined: %v", err)
		return
	}
	if len(recent) == 0 {
		log.Warn("UserJoined: no recent payment found for member %v", u.ID)
	} else {
		a := recent[len(recent)-1]
		now := time.Now()
		member := model.Member{
			UserID:            u.ID,
			Username:          u.Username,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			Plan:              a.Plan,
			JoinedAt:          now,
			SubscriptionStart: now,
			SessionID:         a.SessionID,
			Active:            true,
		}
		if a.Plan == model.PlanMonthly {
			member.SubscriptionEnd = now.Add(model.MonthlyDuration)
		}
		if err := service.AddMember(member); err != nil {
			log.Warn("UserJoined: %v", err)
		} else {
			log.Info("tracked new %v member %v for session %v", a.Plan, u.ID, a.SessionID)
		}
	}
	b.revokeOutstandingLinks()
}

// revokeOutstandingLinks invalidates every link that is still open once
// somebody has joined. A single-use link is burned by its first use
// anyway; revoking the rest closes the window where a second purchase's
// link admits the wrong person.
func (b *Bot) revokeOutstandingLinks() {
	links, err := service.OutstandingLinks()
	if err != nil {
		log.Warn("revokeOutstandingLinks: %v", err)
		return
	}
	for _, a := range links {
		if err := b.RevokeInviteLink(a.TelegramLink); err != nil {
			log.Warn("revoke invite link for session %v: %v", a.SessionID, err)
			continue
		}
		if err := service.MarkLinkRevoked(a.SessionID); err != nil {
			log.Warn("revokeOutstandingLinks: %v", err)
		}
	}
}
