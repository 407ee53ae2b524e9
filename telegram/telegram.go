package telegram

import (
	"strings"
	"time"

	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Bot is the long-lived handle to the Telegram group the service manages.
type Bot struct {
	tb   *tb.Bot
	chat *tb.Chat
}

func New(token string, chatID string, poller *tb.LongPoller) (*Bot, error) {
	if poller == nil {
		poller = &tb.LongPoller{Timeout: 15 * time.Second}
	}
	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: poller,
	})
	if err != nil {
		return nil, err
	}
	chat, err := b.ChatByID(chatID)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		tb:   b,
		chat: chat,
	}
	b.Handle(tb.OnUserJoined, bot.UserJoined)
	b.Handle(tb.OnUserLeft, func(m *tb.Message) {
		if m.UserLeft != nil {
			log.Info("member left: %v (%v)", m.UserLeft.ID, m.UserLeft.Username)
		}
	})
	return bot, nil
}

// Start begins long polling. It blocks until Stop is called.
func (b *Bot) Start() {
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// CreateInviteLink requests a single-use invite link from Telegram. The
// member limit of 1 is what makes the link one-time; the expiry bounds how
// long an unclaimed link stays usable.
func (b *Bot) CreateInviteLink(sessionID string, expireAt time.Time) (string, error) {
	link, err := b.tb.CreateInviteLink(b.chat, &tb.ChatInviteLink{
		ExpireUnixtime: expireAt.Unix(),
		MemberLimit:    1,
	})
	if err != nil {
		return "", err
	}
	log.Info("created invite link for session %v, expires %v", sessionID, expireAt)
	return link.InviteLink, nil
}

func (b *Bot) RevokeInviteLink(link string) error {
	_, err := b.tb.RevokeInviteLink(b.chat, link)
	return err
}

// KickTemporarily bans the user until the given time. Telegram lifts the
// ban afterwards so a repurchase can re-admit the same account. A user who
// is already gone counts as kicked.
func (b *Bot) KickTemporarily(userID int64, until time.Time) error {
	err := b.tb.Ban(b.chat, &tb.ChatMember{
		User:            &tb.User{ID: userID},
		RestrictedUntil: until.Unix(),
	})
	if err != nil && alreadyGone(err) {
		return nil
	}
	return err
}

func (b *Bot) Unban(userID int64) error {
	return b.tb.Unban(b.chat, &tb.User{ID: userID})
}

// Admins lists the administrators of the managed group.
func (b *Bot) Admins() (ids []int64, err error) {
	members, err := b.tb.AdminsOf(b.chat)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.User != nil {
			ids = append(ids, m.User.ID)
		}
	}
	return ids, nil
}

func alreadyGone(err error) bool {
	s := err.Error()
	return strings.Contains(s, "USER_NOT_PARTICIPANT") ||
		strings.Contains(s, "user not found") ||
		strings.Contains(s, "PARTICIPANT_ID_INVALID")
}
