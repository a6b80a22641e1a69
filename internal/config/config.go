package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	ConfigFile string
	Verbose    bool
)

// GlobalConfig global configuration
type GlobalConfig struct {
	CheckIntervalSeconds int    `mapstructure:"check_interval_seconds"`
	CheckCommand         string `mapstructure:"check_command"`
	FeishuWebhook        string `mapstructure:"feishu_webhook"`
	FeishuSecret         string `mapstructure:"feishu_secret"`
}

// CheckInterval returns the configured interval as a duration
func (c *GlobalConfig) CheckInterval() time.Duration {
	if c.CheckIntervalSeconds <= 0 {
		return 600 * time.Second
	}
	return time.Duration(c.CheckIntervalSeconds) * time.Second
}

// InitConfig initialize configuration
func InitConfig() {
	if ConfigFile != "" {
		viper.SetConfigFile(ConfigFile)
	} else {
		configDir := GetMonitorHome()

		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	// Set default values
	setDefaults()

	// Environment overrides for the Feishu bot, same names the
	// original deployment used
	viper.BindEnv("feishu_webhook", "FEISHU_BOT_URL")
	viper.BindEnv("feishu_secret", "FEISHU_BOT_SECRET")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create default config
			createDefaultConfig()
		}
	}
}

// GetGlobalConfig get global configuration
func GetGlobalConfig() *GlobalConfig {
	var config GlobalConfig
	viper.Unmarshal(&config)
	return &config
}

func setDefaults() {
	viper.SetDefault("check_interval_seconds", 600)
	viper.SetDefault("check_command", "")
	viper.SetDefault("feishu_webhook", "")
	viper.SetDefault("feishu_secret", "")
}

func createDefaultConfig() {
	configPath := filepath.Join(GetMonitorHome(), "config.toml")

	defaultConfig := `# linuxdo-monitor Global Configuration File

# Seconds to sleep between checks
check_interval_seconds = 600

# Command executed each cycle (empty means the monitor runs its own "check")
check_command = ""

# Feishu bot webhook URL (FEISHU_BOT_URL environment variable overrides)
feishu_webhook = ""

# Feishu bot signing secret (FEISHU_BOT_SECRET environment variable overrides)
feishu_secret = ""
`

	os.WriteFile(configPath, []byte(defaultConfig), 0644)
}
