package config

import (
	log2 "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dreamzz-lol/gatekeeper/common"
	"github.com/dreamzz-lol/gatekeeper/db"
	"github.com/dreamzz-lol/gatekeeper/pkg/log"
	"github.com/stevenroose/gonfig"
)

type Params struct {
	Address string `id:"address" short:"a" default:"0.0.0.0:14914" desc:"Listening address"`
	Config  string `id:"config" short:"c" default:"$HOME/.config/gatekeeper" desc:"Gatekeeper configuration directory"`
	Host    string `id:"host" default:"example.org" desc:"Public host of this deployment"`

	BotToken       string `id:"bot-token" desc:"Telegram bot token"`
	TelegramChatID string `id:"telegram-chat-id" desc:"Telegram group the bot manages"`

	StripeSecretKey     string `id:"stripe-secret-key" desc:"Stripe API secret key"`
	StripeWebhookSecret string `id:"stripe-webhook-secret" desc:"Stripe webhook signing secret"`

	DiscordBotToken       string `id:"discord-bot-token" desc:"Discord bot token"`
	DiscordGuildID        string `id:"discord-guild-id" desc:"Discord server to grant roles in"`
	DiscordMonthlyRoleID  string `id:"discord-monthly-role" desc:"Role granted to monthly members"`
	DiscordLifetimeRoleID string `id:"discord-lifetime-role" desc:"Role granted to lifetime members"`

	CronSecret string `id:"cron-secret" desc:"Bearer token required by the sweep trigger endpoint"`

	LogLevel            string `id:"log-level" default:"info" desc:"Optional values: trace, debug, info, warn or error"`
	LogFile             string `id:"log-file" desc:"The path of log file"`
	LogMaxDays          int64  `id:"log-max-days" default:"3" desc:"Maximum number of days to keep log files"`
	LogDisableColor     bool   `id:"log-disable-color"`
	LogDisableTimestamp bool   `id:"log-disable-timestamp"`
}

var params Params

func initFunc() {
	err := gonfig.Load(&params, gonfig.Conf{
		FileDisable:       true,
		FlagIgnoreUnknown: false,
		EnvPrefix:         "GATE_",
	})
	if err != nil {
		if !strings.HasPrefix(err.Error(), "unexpected word while parsing flags") {
			log2.Fatal(err)
		}
	}
	// replace all dots of the filename with underlines
	params.Config = filepath.Join(
		filepath.Dir(params.Config),
		strings.ReplaceAll(filepath.Base(params.Config), ".", "_"),
	)
	// expand '~' with user home
	params.Config, err = common.HomeExpand(params.Config)
	if err != nil {
		log2.Fatal(err)
	}
	params.LogFile, err = common.HomeExpand(params.LogFile)
	if err != nil {
		log2.Fatal(err)
	}
	if strings.Contains(params.Config, "$HOME") {
		if h, err := os.UserHomeDir(); err == nil {
			params.Config = strings.ReplaceAll(params.Config, "$HOME", h)
		}
	}
	if err := os.MkdirAll(params.Config, 0700); err != nil {
		log2.Fatal(err)
	}
	logWay := "console"
	if params.LogFile != "" {
		logWay = "file"
	}
	log.InitLog(logWay, params.LogFile, params.LogLevel, params.LogMaxDays, params.LogDisableColor, params.LogDisableTimestamp)
	db.InitDB(params.Config)
}

var once sync.Once

func GetConfig() *Params {
	once.Do(initFunc)
	return &params
}
