package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DiscordConfig struct {
	BotToken string `yaml:"botToken" validate:"required"`
	// ChannelID is the channel renamed on every rank update.
	ChannelID string `yaml:"channelId" validate:"required"`
	// HistoryChannelID holds the log lines read back for charts. Defaults to ChannelID.
	HistoryChannelID string        `yaml:"historyChannelId"`
	ChatWebhookURL   string        `yaml:"chatWebhookUrl" validate:"required|fullUrl"`
	LogWebhookURL    string        `yaml:"logWebhookUrl" validate:"required|fullUrl"`
	Mention          string        `yaml:"mention"`
	PageSize         int           `yaml:"pageSize" validate:"required|int|min:1|max:100"`
	Timeout          time.Duration `yaml:"timeout"`
}

type IdentityConfig struct {
	PlayerID string `yaml:"playerId"`
	Name     string `yaml:"name" validate:"required"`
	TeamID   int64  `yaml:"teamId" validate:"required"`
	TeamTag  string `yaml:"teamTag" validate:"required"`
	Country  string `yaml:"country" validate:"required"`
}

type LeaderboardConfig struct {
	URL      string        `yaml:"url" validate:"required|fullUrl"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

type ChannelConfig struct {
	Prefix      string `yaml:"prefix" validate:"required"`
	DisplayName string `yaml:"displayName" validate:"required"`
}

type ScheduleConfig struct {
	Spec           string `yaml:"spec" validate:"required"`
	Timezone       string `yaml:"timezone"`
	QuietFromHour  int    `yaml:"quietFromHour" validate:"int|min:0|max:23"`
	QuietUntilHour int    `yaml:"quietUntilHour" validate:"int|min:0|max:23"`
}

type BackupConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	Compress bool   `yaml:"compress"`
}

type ChartConfig struct {
	ImageDir        string `yaml:"imageDir" validate:"required"`
	VideoDir        string `yaml:"videoDir" validate:"required"`
	Width           int    `yaml:"width" validate:"required|int|min:100"`
	Height          int    `yaml:"height" validate:"required|int|min:100"`
	AnimationWidth  int    `yaml:"animationWidth" validate:"required|int|min:100"`
	AnimationHeight int    `yaml:"animationHeight" validate:"required|int|min:100"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Discord     DiscordConfig     `yaml:"discord"`
	Identity    IdentityConfig    `yaml:"identity"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Channel     ChannelConfig     `yaml:"channel"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Backup      BackupConfig      `yaml:"backup"`
	Chart       ChartConfig       `yaml:"chart"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// HistoryChannel returns the channel whose messages carry the rank log lines.
func (c *Config) HistoryChannel() string {
	if c.Discord.HistoryChannelID != "" {
		return c.Discord.HistoryChannelID
	}
	return c.Discord.ChannelID
}
