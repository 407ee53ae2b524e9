package service

import (
	"os"
	"testing"

	"github.com/dreamzz-lol/gatekeeper/db"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gatekeeper-test")
	if err != nil {
		panic(err)
	}
	db.InitDB(dir)
	code := m.Run()
	db.CloseDB()
	os.RemoveAll(dir)
	os.Exit(code)
}
