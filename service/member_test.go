package service

import (
	"errors"
	"testing"
	"time"

	"github.com/dreamzz-lol/gatekeeper/model"
)

func TestExpiredMonthlyMembers(t *testing.T) {
	now := time.Now()
	members := []model.Member{
		{
			UserID:          9101,
			Username:        "lapsed",
			Plan:            model.PlanMonthly,
			SubscriptionEnd: now.Add(-time.Second),
			Active:          true,
		},
		{
			UserID:          9102,
			Username:        "current",
			Plan:            model.PlanMonthly,
			SubscriptionEnd: now.Add(24 * time.Hour),
			Active:          true,
		},
		{
			UserID:   9103,
			Username: "forever",
			Plan:     model.PlanLifetime,
			JoinedAt: now.Add(-365 * 24 * time.Hour),
			Active:   true,
		},
		{
			UserID:          9104,
			Username:        "gone",
			Plan:            model.PlanMonthly,
			SubscriptionEnd: now.Add(-48 * time.Hour),
			Active:          false,
		},
	}
	for _, m := range members {
		if err := AddMember(m); err != nil {
			t.Fatal(err)
		}
	}
	expired, err := ExpiredMonthlyMembers()
	if err != nil {
		t.Fatal(err)
	}
	found := map[int64]bool{}
	for _, m := range expired {
		found[m.UserID] = true
	}
	if !found[9101] {
		t.Fatal("lapsed monthly member missing from candidates")
	}
	if found[9102] || found[9103] || found[9104] {
		t.Fatalf("unexpected candidates: %v", found)
	}
}

func TestDeactivateMember(t *testing.T) {
	if err := AddMember(model.Member{
		UserID: 9201,
		Plan:   model.PlanMonthly,
		Active: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := DeactivateMember(9201, "Monthly subscription expired 3 days ago"); err != nil {
		t.Fatal(err)
	}
	m, err := GetMember(9201)
	if err != nil {
		t.Fatal(err)
	}
	if m.Active {
		t.Fatal("member should be inactive")
	}
	if m.DeactivatedReason != "Monthly subscription expired 3 days ago" {
		t.Fatalf("wrong reason: %q", m.DeactivatedReason)
	}
	if m.LastChecked.IsZero() {
		t.Fatal("LastChecked should be set")
	}
	if err := DeactivateMember(9299, "x"); !errors.Is(err, model.NotFoundErr) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestHasValidAccess(t *testing.T) {
	now := time.Now()
	if err := AddMember(model.Member{
		UserID:          9301,
		Plan:            model.PlanMonthly,
		SubscriptionEnd: now.Add(time.Hour),
		Active:          true,
	}); err != nil {
		t.Fatal(err)
	}
	if !HasValidAccess(9301) {
		t.Fatal("active monthly member within window should have access")
	}
	if err := AddMember(model.Member{
		UserID:          9302,
		Plan:            model.PlanMonthly,
		SubscriptionEnd: now.Add(-time.Hour),
		Active:          true,
	}); err != nil {
		t.Fatal(err)
	}
	if HasValidAccess(9302) {
		t.Fatal("lapsed monthly member should not have access")
	}
	if err := AddMember(model.Member{
		UserID: 9303,
		Plan:   model.PlanLifetime,
		Active: true,
	}); err != nil {
		t.Fatal(err)
	}
	if !HasValidAccess(9303) {
		t.Fatal("lifetime member should have access")
	}
	if HasValidAccess(9399) {
		t.Fatal("unknown user should not have access")
	}
}

func TestStats(t *testing.T) {
	s, err := Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total == 0 || s.Total != s.Active+s.Inactive {
		t.Fatalf("inconsistent stats: %+v", s)
	}
}
