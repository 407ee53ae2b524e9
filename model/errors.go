package model

import "fmt"

var (
	UnauthorizedErr    = fmt.Errorf("unauthorized")
	NotFoundErr        = fmt.Errorf("not found")
	NotReadyErr        = fmt.Errorf("not ready")
	AlreadyConsumedErr = fmt.Errorf("already consumed")
	ExpiredErr         = fmt.Errorf("expired")
	UpstreamErr        = fmt.Errorf("upstream failure")
	InvalidInputErr    = fmt.Errorf("invalid input")
)
