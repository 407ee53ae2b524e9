package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	jsoniter "github.com/json-iterator/go"
)

func memberKey(userID int64) []byte {
	return []byte(strconv.FormatInt(userID, 10))
}

// AddMember registers a tracked subscriber. An existing record of the same
// user is overwritten, which covers a repurchase after a kick.
func AddMember(m model.Member) error {
	if m.UserID == 0 {
		return fmt.Errorf("AddMember: %w: empty user id", model.InvalidInputErr)
	}
	err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketMember))
		if err != nil {
			return err
		}
		b, err := jsoniter.Marshal(&m)
		if err != nil {
			return err
		}
		return bkt.Put(memberKey(m.UserID), b)
	})
	if err != nil {
		return fmt.Errorf("AddMember: %w", err)
	}
	return nil
}

func GetMember(userID int64) (m model.Member, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketMember))
		if bkt == nil {
			return model.NotFoundErr
		}
		b := bkt.Get(memberKey(userID))
		if b == nil {
			return model.NotFoundErr
		}
		return jsoniter.Unmarshal(b, &m)
	})
	return m, err
}

func ListMembers() (list []model.Member, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketMember))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, b []byte) error {
			var m model.Member
			if err := jsoniter.Unmarshal(b, &m); err != nil {
				return nil
			}
			list = append(list, m)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("ListMembers: %w", err)
	}
	return list, nil
}

// ExpiredMonthlyMembers lists active monthly members whose subscription
// window has ended.
func ExpiredMonthlyMembers() (list []model.Member, err error) {
	members, err := ListMembers()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, m := range members {
		if m.Active && m.Lapsed(now) {
			list = append(list, m)
		}
	}
	return list, nil
}

// DeactivateMember flips the member inactive with a human-readable reason.
// The record itself is kept; retention cleanup drops it later.
func DeactivateMember(userID int64, reason string) error {
	err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketMember))
		if err != nil {
			return err
		}
		b := bkt.Get(memberKey(userID))
		if b == nil {
			return model.NotFoundErr
		}
		var m model.Member
		if err := jsoniter.Unmarshal(b, &m); err != nil {
			return err
		}
		m.Active = false
		m.DeactivatedReason = reason
		m.LastChecked = time.Now()
		b, err = jsoniter.Marshal(&m)
		if err != nil {
			return err
		}
		return bkt.Put(memberKey(userID), b)
	})
	if err != nil {
		return fmt.Errorf("DeactivateMember: %w", err)
	}
	return nil
}

// HasValidAccess reports whether the user currently holds a valid
// subscription.
func HasValidAccess(userID int64) bool {
	m, err := GetMember(userID)
	if err != nil || !m.Active {
		return false
	}
	if m.Plan == model.PlanLifetime {
		return true
	}
	return !m.Lapsed(time.Now())
}

func Stats() (s model.MemberStats, err error) {
	members, err := ListMembers()
	if err != nil {
		return s, err
	}
	now := time.Now()
	for _, m := range members {
		s.Total++
		if !m.Active {
			s.Inactive++
			continue
		}
		s.Active++
		switch m.Plan {
		case model.PlanMonthly:
			s.Monthly++
		case model.PlanLifetime:
			s.Lifetime++
		}
		if m.Lapsed(now) {
			s.Expired++
		}
	}
	return s, nil
}
