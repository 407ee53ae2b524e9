package router

import (
	"github.com/dreamzz-lol/gatekeeper/config"
	"github.com/dreamzz-lol/gatekeeper/discord"
	"github.com/dreamzz-lol/gatekeeper/payment"
	"github.com/dreamzz-lol/gatekeeper/service"
	"github.com/dreamzz-lol/gatekeeper/telegram"
	"github.com/dreamzz-lol/gatekeeper/webserver/controller"
	"github.com/gin-gonic/gin"
)

var (
	_ service.InviteLinker = (*telegram.Bot)(nil)
	_ service.MemberKicker = (*telegram.Bot)(nil)
)

func Run(bot *telegram.Bot, dc *discord.Client, pay *payment.Client) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	api := engine.Group("/api")
	{
		api.POST("webhook/stripe", controller.PostStripeWebhook(pay, bot))
		session := api.Group("session/:SessionID")
		{
			session.GET("", controller.GetSession(pay))
			session.GET("artifact", controller.GetArtifact(pay))
			session.POST("viewed", controller.PostViewed)
		}
		api.POST("redeem", controller.PostRedeem(dc))
		api.POST("sweep", controller.PostSweep(bot))
		api.GET("sweep", controller.GetSweep)
		api.GET("members", controller.GetMembers)
		api.GET("members/:UserID/access", controller.GetMemberAccess)
		api.GET("status", controller.GetStatus(bot))
	}
	return engine.Run(config.GetConfig().Address)
}
