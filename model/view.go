package model

import "time"

const (
	BucketView = "view"

	ViewTTL = 1 * time.Hour
)

// SessionView records that the confirmation page of a checkout session has
// been rendered once. It only gates the page, not the artifact data.
type SessionView struct {
	SessionID string
	HasViewed bool
	ViewedAt  time.Time
	CreatedAt time.Time
}
