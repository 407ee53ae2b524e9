package controller

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
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

func memberAccess(t *testing.T, userID string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Params = gin.Params{{Key: "UserID", Value: userID}}
	GetMemberAccess(ctx)
	return w
}

func TestGetMemberAccess(t *testing.T) {
	now := time.Now()
	if err := service.AddMember(model.Member{
		UserID:          7301,
		Plan:            model.PlanMonthly,
		SubscriptionEnd: now.Add(time.Hour),
		Active:          true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := service.AddMember(model.Member{
		UserID:          7302,
		Plan:            model.PlanMonthly,
		SubscriptionEnd: now.Add(-time.Hour),
		Active:          true,
	}); err != nil {
		t.Fatal(err)
	}

	w := memberAccess(t, "7301")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"active"`) {
		t.Fatalf("want active, got %d %s", w.Code, w.Body.String())
	}
	w = memberAccess(t, "7302")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"expired"`) {
		t.Fatalf("want expired, got %d %s", w.Code, w.Body.String())
	}
	w = memberAccess(t, "7399")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"not_found"`) {
		t.Fatalf("want not_found, got %d %s", w.Code, w.Body.String())
	}
	w = memberAccess(t, "not-a-number")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want bad request, got %d", w.Code)
	}
}
