package controller

import (
	"strconv"

	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/gin-gonic/gin"
)

// GetMembers returns membership stats and the tracked records.
func GetMembers(ctx *gin.Context) {
	stats, err := service.Stats()
	if err != nil {
		common.ResponseError(ctx, httpStatus(err), err)
		return
	}
	members, err := service.ListMembers()
	if err != nil {
		common.ResponseError(ctx, httpStatus(err), err)
		return
	}
	common.ResponseSuccess(ctx, gin.H{
		"Stats":   stats,
		"Members": members,
	})
}

// GetMemberAccess reports the subscription status of one member:
// "active", "expired" or "not_found".
func GetMemberAccess(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("UserID"), 10, 64)
	if err != nil {
		common.ResponseBadRequestError(ctx)
		return
	}
	status := "not_found"
	if _, err := service.GetMember(userID); err == nil {
		if service.HasValidAccess(userID) {
			status = "active"
		} else {
			status = "expired"
		}
	}
	common.ResponseSuccess(ctx, gin.H{
		"UserID":    userID,
		"Status":    status,
		"HasAccess": status == "active",
	})
}
