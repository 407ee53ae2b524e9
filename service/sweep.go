package service

import (
	"fmt"
	"time"

	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
)

// MemberKicker removes a member from the managed group with temporary ban
// semantics, so the same user can rejoin after a cooldown if they pay
// again. "Already not a member" must be reported as success.
type MemberKicker interface {
	KickTemporarily(userID int64, until time.Time) error
}

type SweepDetail struct {
	UserID      int64
	Username    string
	FirstName   string
	DaysExpired int
	Status      string
	Error       string `json:",omitempty"`
}

type SweepReport struct {
	Found   int
	Kicked  int
	Errors  int
	Details []SweepDetail
}

// SweepExpired kicks every active monthly member whose subscription window
// has ended and deactivates their record. A kick failure is recorded and
// the record left active, so the next sweep retries it; re-invocation is
// the only retry mechanism. delay is a sequential throttle between kicks
// to respect Telegram rate limits.
func SweepExpired(kicker MemberKicker, delay time.Duration) (report SweepReport, err error) {
	expired, err := ExpiredMonthlyMembers()
	if err != nil {
		return report, fmt.Errorf("SweepExpired: %w", err)
	}
	report.Found = len(expired)
	now := time.Now()
	for i, m := range expired {
		days := daysExpired(m, now)
		detail := SweepDetail{
			UserID:      m.UserID,
			Username:    m.Username,
			FirstName:   m.FirstName,
			DaysExpired: days,
		}
		if err := kicker.KickTemporarily(m.UserID, now.Add(model.KickCooldown)); err != nil {
			log.Warn("SweepExpired: kick member %v: %v", m.UserID, err)
			report.Errors++
			detail.Status = "error"
			detail.Error = err.Error()
			report.Details = append(report.Details, detail)
			continue
		}
		reason := fmt.Sprintf("Monthly subscription expired %d days ago", days)
		if err := DeactivateMember(m.UserID, reason); err != nil {
			log.Warn("SweepExpired: deactivate member %v: %v", m.UserID, err)
			report.Errors++
			detail.Status = "error"
			detail.Error = err.Error()
			report.Details = append(report.Details, detail)
			continue
		}
		log.Info("SweepExpired: kicked member %v (%v): %v", m.UserID, m.Username, reason)
		report.Kicked++
		detail.Status = "kicked"
		report.Details = append(report.Details, detail)
		if delay > 0 && i < len(expired)-1 {
			time.Sleep(delay)
		}
	}
	return report, nil
}

// SweepDryRun returns the same candidate list as SweepExpired without
// kicking or mutating anything.
func SweepDryRun() (report SweepReport, err error) {
	expired, err := ExpiredMonthlyMembers()
	if err != nil {
		return report, fmt.Errorf("SweepDryRun: %w", err)
	}
	report.Found = len(expired)
	now := time.Now()
	for _, m := range expired {
		report.Details = append(report.Details, SweepDetail{
			UserID:      m.UserID,
			Username:    m.Username,
			FirstName:   m.FirstName,
			DaysExpired: daysExpired(m, now),
			Status:      "expired",
		})
	}
	return report, nil
}

func daysExpired(m model.Member, now time.Time) int {
	if m.SubscriptionEnd.IsZero() {
		return 0
	}
	return int(now.Sub(m.SubscriptionEnd).Hours() / 24)
}
