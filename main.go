package main

import (
	"github.com/dreamzz-lol/gatekeeper/config"
	"github.com/dreamzz-lol/gatekeeper/discord"
	"github.com/dreamzz-lol/gatekeeper/payment"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/dreamzz-lol/gatekeeper/telegram"
	"github.com/dreamzz-lol/gatekeeper/webserver/router"
)

func main() {
	cfg := config.GetConfig()

	bot, err := telegram.New(cfg.BotToken, cfg.TelegramChatID, nil)
	if err != nil {
		log.Fatal("telegram: %v", err)
	}
	go bot.Start()

	var dc *discord.Client
	if cfg.DiscordBotToken != "" {
		if dc, err = discord.New(cfg.DiscordBotToken, cfg.DiscordGuildID, cfg.DiscordMonthlyRoleID, cfg.DiscordLifetimeRoleID); err != nil {
			log.Fatal("discord: %v", err)
		}
	} else {
		// without a token, redemption still consumes codes and an
		// external bot does the grants
		log.Warn("no discord bot token configured, role grants disabled")
	}

	pay := payment.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	GoBackgrounds()

	if err := router.Run(bot, dc, pay); err != nil {
		log.Fatal("webserver: %v", err)
	}
}
