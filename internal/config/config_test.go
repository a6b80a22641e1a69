package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestGetMonitorHomeEnvOverride(t *testing.T) {
	home := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv("MONITOR_HOME", home)

	if got := GetMonitorHome(); got != home {
		t.Errorf("GetMonitorHome() = %q, want %q", got, home)
	}
}

func TestPathHelpers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MONITOR_HOME", home)

	if got := GetFeedsDir(); got != filepath.Join(home, "feeds") {
		t.Errorf("GetFeedsDir() = %q", got)
	}
	if got := GetDataFile(); got != filepath.Join(home, "rss_feed_data.json") {
		t.Errorf("GetDataFile() = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	cfg := GetGlobalConfig()
	if cfg.CheckIntervalSeconds != 600 {
		t.Errorf("CheckIntervalSeconds = %d, want 600", cfg.CheckIntervalSeconds)
	}
	if cfg.CheckCommand != "" {
		t.Errorf("CheckCommand = %q, want empty", cfg.CheckCommand)
	}
	if cfg.FeishuWebhook != "" || cfg.FeishuSecret != "" {
		t.Error("Feishu settings should default to empty")
	}
}

func TestCheckInterval(t *testing.T) {
	cfg := &GlobalConfig{CheckIntervalSeconds: 30}
	if got := cfg.CheckInterval(); got != 30*time.Second {
		t.Errorf("CheckInterval() = %v, want 30s", got)
	}

	// Non-positive values fall back to the 600s default
	cfg = &GlobalConfig{CheckIntervalSeconds: 0}
	if got := cfg.CheckInterval(); got != 600*time.Second {
		t.Errorf("CheckInterval() = %v, want 600s", got)
	}
	cfg = &GlobalConfig{CheckIntervalSeconds: -5}
	if got := cfg.CheckInterval(); got != 600*time.Second {
		t.Errorf("CheckInterval() = %v, want 600s", got)
	}
}

func TestFeishuEnvOverride(t *testing.T) {
	t.Setenv("MONITOR_HOME", t.TempDir())
	t.Setenv("FEISHU_BOT_URL", "https://open.feishu.cn/hook/abc")
	t.Setenv("FEISHU_BOT_SECRET", "s3cret")

	viper.Reset()
	InitConfig()

	cfg := GetGlobalConfig()
	if cfg.FeishuWebhook != "https://open.feishu.cn/hook/abc" {
		t.Errorf("FeishuWebhook = %q", cfg.FeishuWebhook)
	}
	if cfg.FeishuSecret != "s3cret" {
		t.Errorf("FeishuSecret = %q", cfg.FeishuSecret)
	}
}
