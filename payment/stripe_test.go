package payment

import (
	"testing"
	"time"

	"github.com/dreamzz-lol/gatekeeper/model"
)

func TestWithinReplayWindow(t *testing.T) {
	now := time.Now()
	if !WithinReplayWindow(now.Add(-time.Minute), now) {
		t.Fatal("a session paid 1 minute ago is within the window")
	}
	if !WithinReplayWindow(now.Add(-model.SessionReplayWindow), now) {
		t.Fatal("the window bound is inclusive")
	}
	if WithinReplayWindow(now.Add(-model.SessionReplayWindow-time.Second), now) {
		t.Fatal("a session older than the window must be rejected")
	}
}
