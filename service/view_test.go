package service

import "testing"

func TestMarkViewedIdempotent(t *testing.T) {
	if HasBeenViewed("cs_view_1") {
		t.Fatal("fresh session should not be viewed")
	}
	if err := MarkViewed("cs_view_1"); err != nil {
		t.Fatal(err)
	}
	if !HasBeenViewed("cs_view_1") {
		t.Fatal("session should be viewed")
	}
	// marking again never reverts the flag
	if err := MarkViewed("cs_view_1"); err != nil {
		t.Fatal(err)
	}
	if !HasBeenViewed("cs_view_1") {
		t.Fatal("view flag reverted")
	}
}

func TestMarkViewedEmptySession(t *testing.T) {
	if err := MarkViewed(""); err == nil {
		t.Fatal("empty session id should be rejected")
	}
}
