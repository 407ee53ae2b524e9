package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/config"
	"github.com/dreamzz-lol/gatekeeper/model"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/gin-gonic/gin"
)

// kickDelay throttles consecutive kicks to stay within Telegram limits.
const kickDelay = 1 * time.Second

// PostSweep runs the expiry sweep. It is triggered by an external
// scheduler and guarded by a bearer secret.
func PostSweep(kicker service.MemberKicker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !cronAuthorized(ctx) {
			common.ResponseError(ctx, http.StatusUnauthorized, model.UnauthorizedErr)
			return
		}
		log.Info("sweep triggered, checking for expired members")
		report, err := service.SweepExpired(kicker, kickDelay)
		if err != nil {
			common.ResponseError(ctx, httpStatus(err), err)
			return
		}
		log.Info("sweep complete: %v kicked, %v errors", report.Kicked, report.Errors)
		common.ResponseSuccess(ctx, report)
	}
}

// GetSweep is the read-only variant: the same candidate list, no kicks, no
// mutation.
func GetSweep(ctx *gin.Context) {
	report, err := service.SweepDryRun()
	if err != nil {
		common.ResponseError(ctx, httpStatus(err), err)
		return
	}
	common.ResponseSuccess(ctx, gin.H{
		"Message": "dry run - no members were kicked",
		"Report":  report,
	})
}

func cronAuthorized(ctx *gin.Context) bool {
	secret := config.GetConfig().CronSecret
	if secret == "" {
		return true
	}
	return ctx.GetHeader("Authorization") == fmt.Sprintf("Bearer %s", secret)
}
