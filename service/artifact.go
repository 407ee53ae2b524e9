package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	jsoniter "github.com/json-iterator/go"
)

// StoreArtifact merges the given fields onto any existing artifact of the
// same session, so a retry after a partial failure overwrites the stored
// error instead of losing the earlier fields.
func StoreArtifact(a model.InviteArtifact) (merged model.InviteArtifact, err error) {
	if a.SessionID == "" {
		return merged, fmt.Errorf("StoreArtifact: %w: empty session id", model.InvalidInputErr)
	}
	err = db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketArtifact))
		if err != nil {
			return err
		}
		merged = model.InviteArtifact{
			SessionID: a.SessionID,
			CreatedAt: time.Now(),
			Plan:      model.PlanUnknown,
		}
		if b := bkt.Get([]byte(a.SessionID)); b != nil {
			if err := jsoniter.Unmarshal(b, &merged); err != nil {
				return err
			}
		}
		if a.TelegramLink != "" {
			merged.TelegramLink = a.TelegramLink
		}
		if a.DiscordCode != "" {
			merged.DiscordCode = a.DiscordCode
		}
		if a.Plan != "" {
			merged.Plan = a.Plan
		}
		if a.LinkRevoked {
			merged.LinkRevoked = true
		}
		merged.Error = a.Error
		b, err := jsoniter.Marshal(&merged)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(a.SessionID), b)
	})
	if err != nil {
		return merged, fmt.Errorf("StoreArtifact: %w", err)
	}
	return merged, nil
}

func GetArtifact(sessionID string) (a model.InviteArtifact, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketArtifact))
		if bkt == nil {
			return model.NotFoundErr
		}
		b := bkt.Get([]byte(sessionID))
		if b == nil {
			return model.NotFoundErr
		}
		return jsoniter.Unmarshal(b, &a)
	})
	return a, err
}

// RetrieveArtifact returns the artifact of the given session and deletes it
// in the same transaction. The second call for a session fails with
// NotFoundErr regardless of payment state.
func RetrieveArtifact(sessionID string) (a model.InviteArtifact, err error) {
	err = db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketArtifact))
		if err != nil {
			return err
		}
		b := bkt.Get([]byte(sessionID))
		if b == nil {
			return model.NotFoundErr
		}
		if err := jsoniter.Unmarshal(b, &a); err != nil {
			return err
		}
		return bkt.Delete([]byte(sessionID))
	})
	return a, err
}

// RecentLinkedArtifacts lists artifacts created within the window whose
// invite link is still outstanding, oldest first. The join correlation
// heuristic picks the newest of them.
func RecentLinkedArtifacts(window time.Duration) (list []model.InviteArtifact, err error) {
	deadline := time.Now().Add(-window)
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketArtifact))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, b []byte) error {
			var a model.InviteArtifact
			if err := jsoniter.Unmarshal(b, &a); err != nil {
				return nil
			}
			if a.TelegramLink == "" || a.LinkRevoked || a.CreatedAt.Before(deadline) {
				return nil
			}
			list = append(list, a)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("RecentLinkedArtifacts: %w", err)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// OutstandingLinks lists all artifacts whose invite link has not been
// revoked yet.
func OutstandingLinks() (list []model.InviteArtifact, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketArtifact))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, b []byte) error {
			var a model.InviteArtifact
			if err := jsoniter.Unmarshal(b, &a); err != nil {
				return nil
			}
			if a.TelegramLink != "" && !a.LinkRevoked {
				list = append(list, a)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("OutstandingLinks: %w", err)
	}
	return list, nil
}

// MarkLinkRevoked records that the invite link of the session has been
// revoked at the provider.
func MarkLinkRevoked(sessionID string) error {
	err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketArtifact))
		if err != nil {
			return err
		}
		b := bkt.Get([]byte(sessionID))
		if b == nil {
			return model.NotFoundErr
		}
		var a model.InviteArtifact
		if err := jsoniter.Unmarshal(b, &a); err != nil {
			return err
		}
		a.LinkRevoked = true
		b, err = jsoniter.Marshal(&a)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(sessionID), b)
	})
	if err != nil {
		return fmt.Errorf("MarkLinkRevoked: %w", err)
	}
	return nil
}
