package controller

import (
	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/telegram"
	"github.com/gin-gonic/gin"
)

// GetStatus verifies the bot can reach the managed group with admin
// rights; a failing admin listing is the usual misconfiguration.
func GetStatus(bot *telegram.Bot) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		admins, err := bot.Admins()
		if err != nil {
			common.ResponseError(ctx, httpStatus(err), err)
			return
		}
		common.ResponseSuccess(ctx, gin.H{
			"BotReachable": true,
			"AdminCount":   len(admins),
		})
	}
}
