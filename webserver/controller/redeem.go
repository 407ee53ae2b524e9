package controller

import (
	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/discord"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostRedeem exchanges a verification code for a role grant. Redemption
// and the grant are not transactionally linked: once the code is consumed
// it stays consumed even if the grant fails, in which case the response
// carries a support reference instead of rolling back.
func PostRedeem(dc *discord.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			Code          string
			DiscordUserID string
		}
		if err := ctx.ShouldBindJSON(&req); err != nil || req.Code == "" || req.DiscordUserID == "" {
			common.ResponseBadRequestError(ctx)
			return
		}
		v, err := service.RedeemCode(req.Code, req.DiscordUserID)
		if err != nil {
			common.ResponseError(ctx, httpStatus(err), err)
			return
		}
		log.Info("code %v redeemed by discord user %v (plan %v)", v.Code, req.DiscordUserID, v.Plan)
		roleGranted := false
		supportRef := ""
		if dc != nil {
			if err := dc.GrantRole(req.DiscordUserID, v.Plan); err != nil {
				supportRef = uuid.NewString()
				log.Error("role grant after redemption failed (support ref %v): %v", supportRef, err)
			} else {
				roleGranted = true
			}
		}
		common.ResponseSuccess(ctx, gin.H{
			"Plan":        v.Plan,
			"SessionID":   v.SessionID,
			"RoleGranted": roleGranted,
			"SupportRef":  supportRef,
		})
	}
}
