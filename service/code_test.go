package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	jsoniter "github.com/json-iterator/go"
)

func putCode(t *testing.T, v model.VerificationCode) {
	t.Helper()
	if err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketCode))
		if err != nil {
			return err
		}
		b, err := jsoniter.Marshal(&v)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(v.Code), b)
	}); err != nil {
		t.Fatal(err)
	}
}

func TestNewCodeShape(t *testing.T) {
	code, err := NewCode("cs_code_1", model.PlanMonthly, "buyer@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != model.CodeLength {
		t.Fatalf("want %d-character code, got %q", model.CodeLength, code)
	}
	for _, r := range code {
		if !strings.ContainsRune(common.Alphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", code, r)
		}
	}
}

func TestNewCodeReusesUnredeemedCode(t *testing.T) {
	first, err := NewCode("cs_code_reuse", model.PlanMonthly, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewCode("cs_code_reuse", model.PlanMonthly, "")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("duplicate issuance minted a second code: %v != %v", first, second)
	}
}

func TestRedeemCodeOnce(t *testing.T) {
	code, err := NewCode("cs_code_redeem", model.PlanMonthly, "")
	if err != nil {
		t.Fatal(err)
	}
	v, err := RedeemCode(code, "user42")
	if err != nil {
		t.Fatal(err)
	}
	if v.Plan != model.PlanMonthly || v.RedeemedBy != "user42" || !v.Used {
		t.Fatalf("unexpected redemption result: %+v", v)
	}
	if _, err := RedeemCode(code, "user43"); !errors.Is(err, model.AlreadyConsumedErr) {
		t.Fatalf("second redemption should fail with already consumed, got %v", err)
	}
}

func TestRedeemCodeCaseInsensitive(t *testing.T) {
	code, err := NewCode("cs_code_case", model.PlanLifetime, "")
	if err != nil {
		t.Fatal(err)
	}
	v, err := RedeemCode(strings.ToLower(code), "user7")
	if err != nil {
		t.Fatal(err)
	}
	if v.Code != code {
		t.Fatalf("want %v, got %v", code, v.Code)
	}
}

func TestRedeemCodeUnknown(t *testing.T) {
	if _, err := RedeemCode("NOPE42", "user1"); !errors.Is(err, model.NotFoundErr) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRedeemCodeExpired(t *testing.T) {
	putCode(t, model.VerificationCode{
		Code:      "OLD242",
		SessionID: "cs_code_old",
		Plan:      model.PlanMonthly,
		CreatedAt: time.Now().Add(-model.CodeTTL - time.Second),
	})
	if _, err := RedeemCode("OLD242", "user1"); !errors.Is(err, model.ExpiredErr) {
		t.Fatalf("want expired, got %v", err)
	}
}

func TestCodeBySession(t *testing.T) {
	code, err := NewCode("cs_code_index", model.PlanMonthly, "")
	if err != nil {
		t.Fatal(err)
	}
	got, err := CodeBySession("cs_code_index")
	if err != nil {
		t.Fatal(err)
	}
	if got != code {
		t.Fatalf("want %v, got %v", code, got)
	}
	if _, err := CodeBySession("cs_code_absent"); !errors.Is(err, model.NotFoundErr) {
		t.Fatalf("want not found, got %v", err)
	}
}
