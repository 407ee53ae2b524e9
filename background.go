package main

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	jsoniter "github.com/json-iterator/go"
)

func GoBackgrounds() {
	// remove verification codes older than 24 hours
	go ExpireCleanBackground(model.BucketCode, 10*time.Minute, func(tx *bolt.Tx, b []byte, now time.Time) (expired bool) {
		var v model.VerificationCode
		if err := jsoniter.Unmarshal(b, &v); err != nil {
			// invalid codes are regarded as expired
			return true
		}
		return common.Expired(v.CreatedAt.Add(model.CodeTTL))
	})()

	// drop session->code index entries whose code is gone
	go ExpireCleanBackground(model.BucketCodeIndex, 10*time.Minute, func(tx *bolt.Tx, b []byte, now time.Time) (expired bool) {
		bkt := tx.Bucket([]byte(model.BucketCode))
		if bkt == nil {
			return true
		}
		return bkt.Get(b) == nil
	})()

	// remove session view records older than 1 hour
	go ExpireCleanBackground(model.BucketView, 5*time.Minute, func(tx *bolt.Tx, b []byte, now time.Time) (expired bool) {
		var v model.SessionView
		if err := jsoniter.Unmarshal(b, &v); err != nil {
			return true
		}
		return common.Expired(v.CreatedAt.Add(model.ViewTTL))
	})()

	// remove unclaimed invite artifacts older than 24 hours
	go ExpireCleanBackground(model.BucketArtifact, 1*time.Hour, func(tx *bolt.Tx, b []byte, now time.Time) (expired bool) {
		var a model.InviteArtifact
		if err := jsoniter.Unmarshal(b, &a); err != nil {
			return true
		}
		return common.Expired(a.CreatedAt.Add(model.ArtifactTTL))
	})()

	// retention cleanup: inactive members are dropped 30 days after the
	// sweep last touched them
	go ExpireCleanBackground(model.BucketMember, 6*time.Hour, func(tx *bolt.Tx, b []byte, now time.Time) (expired bool) {
		var m model.Member
		if err := jsoniter.Unmarshal(b, &m); err != nil {
			return false
		}
		if m.Active || m.LastChecked.IsZero() {
			return false
		}
		return common.Expired(m.LastChecked.Add(model.InactiveRetention))
	})()
}

func ExpireCleanBackground(bucket string, cleanInterval time.Duration, f func(tx *bolt.Tx, b []byte, now time.Time) (expired bool)) func() {
	return func() {
		tick := time.Tick(cleanInterval)
		for now := range tick {
			if err := db.DB().Update(func(tx *bolt.Tx) error {
				bkt, err := tx.CreateBucketIfNotExists([]byte(bucket))
				if err != nil {
					return err
				}
				var listClean [][]byte
				if err = bkt.ForEach(func(k, b []byte) error {
					if f(tx, b, now) {
						listClean = append(listClean, k)
					}
					return nil
				}); err != nil {
					return err
				}
				for _, k := range listClean {
					if err = bkt.Delete(k); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				log.Warn("Clean bucket %v: %v", bucket, err)
			}
		}
	}
}
