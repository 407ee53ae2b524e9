package common

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Alphabet excludes characters that are easy to misread (0/O, 1/I/L).
const Alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func Expired(expireAt time.Time) bool {
	return !expireAt.IsZero() && time.Now().After(expireAt)
}

func HomeExpand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
