package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"rankwatch/internal/structures"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "rankwatch"

// envBindings maps config keys to the environment variables the deployment provides.
var envBindings = map[string]string{
	"logger.level":             "RW_LOG_LEVEL",
	"schedule.spec":            "RW_SCHEDULE",
	"discord.botToken":         "DISCORD_BOT_TOKEN",
	"discord.channelId":        "CHANNEL_ID",
	"discord.historyChannelId": "DISCORD_CHANNEL_ID",
	"discord.chatWebhookUrl":   "WEBHOOK_URL_CHAT",
	"discord.logWebhookUrl":    "WEBHOOK_URL_LOG",
	"identity.playerId":        "PLAYER_ID",
	"identity.name":            "PLAYER_NAME",
	"identity.teamId":          "TEAM_ID",
	"identity.teamTag":         "TEAM_TAG",
	"identity.country":         "COUNTRY_CODE",
	"channel.prefix":           "CHANNEL_PREFIX",
	"channel.displayName":      "DISPLAY_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", os.TempDir())
	v.SetDefault("discord.pageSize", 100)
	v.SetDefault("discord.mention", "@everyone")
	v.SetDefault("discord.timeout", 30*time.Second)
	v.SetDefault("leaderboard.url", "https://www.dota2.com/webapi/ILeaderboard/GetDivisionLeaderboard/v0001?division=europe&leaderboard=0")
	v.SetDefault("leaderboard.timeout", 30*time.Second)
	v.SetDefault("leaderboard.cacheTTL", time.Minute)
	v.SetDefault("channel.prefix", "player")
	v.SetDefault("channel.displayName", "Player")
	v.SetDefault("schedule.spec", "0 * * * *")
	v.SetDefault("schedule.timezone", "Local")
	v.SetDefault("schedule.quietFromHour", 0)
	v.SetDefault("schedule.quietUntilHour", 8)
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("backup.compress", false)
	v.SetDefault("chart.imageDir", "images")
	v.SetDefault("chart.videoDir", "videos")
	v.SetDefault("chart.width", 1920)
	v.SetDefault("chart.height", 1080)
	v.SetDefault("chart.animationWidth", 1280)
	v.SetDefault("chart.animationHeight", 720)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 1)
	v.SetDefault("metrics.enabled", true)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
