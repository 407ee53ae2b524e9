package common

import (
	"testing"
	"time"
)

func TestExpired(t *testing.T) {
	if Expired(time.Time{}) {
		t.Fatal("zero time never expires")
	}
	if Expired(time.Now().Add(time.Hour)) {
		t.Fatal("future time is not expired")
	}
	if !Expired(time.Now().Add(-time.Second)) {
		t.Fatal("past time is expired")
	}
}

func TestHomeExpand(t *testing.T) {
	got, err := HomeExpand("/tmp/abc")
	if err != nil || got != "/tmp/abc" {
		t.Fatalf("absolute path should pass through, got %v, %v", got, err)
	}
	got, err = HomeExpand("~/abc")
	if err != nil {
		t.Fatal(err)
	}
	if got == "~/abc" {
		t.Fatal("tilde should be expanded")
	}
}
