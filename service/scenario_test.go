package service

import (
	"errors"
	"testing"

	"github.com/dreamzz-lol/gatekeeper/model"
)

// The full onboarding lifecycle of one paid session: issue, single
// retrieval, single redemption.
func TestOnboardingLifecycle(t *testing.T) {
	l := &fakeLinker{}
	issued, err := IssueInvites(l, "cs_lifecycle", model.PlanMonthly, "buyer@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if issued.TelegramLink == "" || len(issued.DiscordCode) != model.CodeLength {
		t.Fatalf("incomplete artifact: %+v", issued)
	}

	got, err := RetrieveArtifact("cs_lifecycle")
	if err != nil {
		t.Fatal(err)
	}
	if got.TelegramLink != issued.TelegramLink || got.DiscordCode != issued.DiscordCode {
		t.Fatalf("retrieved artifact differs: %+v vs %+v", got, issued)
	}
	if _, err := RetrieveArtifact("cs_lifecycle"); !errors.Is(err, model.NotFoundErr) {
		t.Fatalf("second retrieval should fail with not found, got %v", err)
	}
	// consumption of the artifact does not consume the code: the index
	// still answers, which is how retrieval distinguishes "consumed"
	// from "not generated yet"
	if _, err := CodeBySession("cs_lifecycle"); err != nil {
		t.Fatalf("code index should survive artifact retrieval: %v", err)
	}

	v, err := RedeemCode(got.DiscordCode, "user42")
	if err != nil {
		t.Fatal(err)
	}
	if v.Plan != model.PlanMonthly {
		t.Fatalf("want monthly, got %v", v.Plan)
	}
	if _, err := RedeemCode(got.DiscordCode, "user43"); !errors.Is(err, model.AlreadyConsumedErr) {
		t.Fatalf("want already consumed, got %v", err)
	}
}
