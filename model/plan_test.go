package model

import (
	"testing"
	"time"
)

func TestPlanFromAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  Plan
	}{
		{1499, PlanMonthly},
		{3499, PlanLifetime},
		{0, PlanUnknown},
		{999, PlanUnknown},
	}
	for _, tt := range tests {
		if got := PlanFromAmount(tt.cents); got != tt.want {
			t.Errorf("PlanFromAmount(%d) = %v, want %v", tt.cents, got, tt.want)
		}
	}
}

func TestMemberLapsed(t *testing.T) {
	now := time.Now()
	monthly := Member{Plan: PlanMonthly, SubscriptionEnd: now.Add(-time.Second)}
	if !monthly.Lapsed(now) {
		t.Fatal("monthly member past the window should be lapsed")
	}
	current := Member{Plan: PlanMonthly, SubscriptionEnd: now.Add(time.Hour)}
	if current.Lapsed(now) {
		t.Fatal("monthly member within the window should not be lapsed")
	}
	lifetime := Member{Plan: PlanLifetime, JoinedAt: now.Add(-10 * 365 * 24 * time.Hour)}
	if lifetime.Lapsed(now) {
		t.Fatal("lifetime members never lapse")
	}
	noEnd := Member{Plan: PlanMonthly}
	if noEnd.Lapsed(now) {
		t.Fatal("a monthly member without an end date cannot lapse")
	}
}
