package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	jsoniter "github.com/json-iterator/go"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewCode mints a verification code bound to the given checkout session.
// If the session already has an unused, unexpired code, that code is
// returned instead of minting a second one.
func NewCode(sessionID string, plan model.Plan, email string) (code string, err error) {
	if sessionID == "" {
		return "", fmt.Errorf("NewCode: %w: empty session id", model.InvalidInputErr)
	}
	err = db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketCode))
		if err != nil {
			return err
		}
		idx, err := tx.CreateBucketIfNotExists([]byte(model.BucketCodeIndex))
		if err != nil {
			return err
		}
		if k := idx.Get([]byte(sessionID)); k != nil {
			if b := bkt.Get(k); b != nil {
				var v model.VerificationCode
				if err := jsoniter.Unmarshal(b, &v); err == nil &&
					!v.Used && !common.Expired(v.CreatedAt.Add(model.CodeTTL)) {
					code = v.Code
					return nil
				}
			}
		}
		for {
			id, err := gonanoid.Generate(common.Alphabet, model.CodeLength)
			if err != nil {
				return err
			}
			if bkt.Get([]byte(id)) == nil {
				code = id
				break
			}
		}
		v := model.VerificationCode{
			Code:      code,
			SessionID: sessionID,
			Plan:      plan,
			Email:     email,
			CreatedAt: time.Now(),
		}
		b, err := jsoniter.Marshal(&v)
		if err != nil {
			return err
		}
		if err := bkt.Put([]byte(code), b); err != nil {
			return err
		}
		return idx.Put([]byte(sessionID), []byte(code))
	})
	if err != nil {
		return "", fmt.Errorf("NewCode: %w", err)
	}
	return code, nil
}

// RedeemCode marks the code used and records who redeemed it. The lookup
// and the mutation happen in one transaction so two concurrent redeemers
// cannot both succeed.
func RedeemCode(code string, discordUserID string) (v model.VerificationCode, err error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || discordUserID == "" {
		return v, fmt.Errorf("RedeemCode: %w", model.InvalidInputErr)
	}
	err = db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketCode))
		if err != nil {
			return err
		}
		b := bkt.Get([]byte(code))
		if b == nil {
			return model.NotFoundErr
		}
		if err := jsoniter.Unmarshal(b, &v); err != nil {
			return err
		}
		if v.Used {
			return model.AlreadyConsumedErr
		}
		if common.Expired(v.CreatedAt.Add(model.CodeTTL)) {
			return model.ExpiredErr
		}
		v.Used = true
		v.RedeemedBy = discordUserID
		b, err = jsoniter.Marshal(&v)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(code), b)
	})
	if err != nil {
		return model.VerificationCode{}, err
	}
	return v, nil
}

// CodeBySession reports whether a code has ever been minted for the
// session. The retrieval endpoint uses it to tell "still generating" apart
// from "already consumed".
func CodeBySession(sessionID string) (code string, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		idx := tx.Bucket([]byte(model.BucketCodeIndex))
		if idx == nil {
			return model.NotFoundErr
		}
		k := idx.Get([]byte(sessionID))
		if k == nil {
			return model.NotFoundErr
		}
		code = string(k)
		return nil
	})
	return code, err
}
