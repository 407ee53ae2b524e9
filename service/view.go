package service

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	jsoniter "github.com/json-iterator/go"
)

// MarkViewed records that the confirmation page of the session has been
// rendered. Idempotent; once viewed, a session never reverts.
func MarkViewed(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("MarkViewed: %w: empty session id", model.InvalidInputErr)
	}
	err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketView))
		if err != nil {
			return err
		}
		now := time.Now()
		v := model.SessionView{
			SessionID: sessionID,
			CreatedAt: now,
		}
		if b := bkt.Get([]byte(sessionID)); b != nil {
			if err := jsoniter.Unmarshal(b, &v); err != nil {
				return err
			}
		}
		v.HasViewed = true
		v.ViewedAt = now
		b, err := jsoniter.Marshal(&v)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(sessionID), b)
	})
	if err != nil {
		return fmt.Errorf("MarkViewed: %w", err)
	}
	return nil
}

func HasBeenViewed(sessionID string) (viewed bool) {
	_ = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketView))
		if bkt == nil {
			return nil
		}
		b := bkt.Get([]byte(sessionID))
		if b == nil {
			return nil
		}
		var v model.SessionView
		if err := jsoniter.Unmarshal(b, &v); err != nil {
			return nil
		}
		viewed = v.HasViewed
		return nil
	})
	return viewed
}
