package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/miosa/osa-feed/ui/list"
)

// Feed names accepted by DefaultFeed and -feed.
const (
	FeedCreators     = "creators"
	FeedCalls        = "calls"
	FeedTransactions = "transactions"
)

// Config holds persistent client settings stored at <profileDir>/feed.json.
type Config struct {
	Theme       string     `json:"theme,omitempty"` // "auto" follows the terminal background
	BackendURL  string     `json:"backend_url,omitempty"`
	DefaultFeed string     `json:"default_feed,omitempty"`
	List        ListConfig `json:"list"`
}

// ListConfig tunes every feed list. Zero or out-of-range values fall back to
// the list defaults.
type ListConfig struct {
	Overscan         int     `json:"overscan"`
	PullThreshold    int     `json:"pull_threshold"`
	PullResistance   float64 `json:"pull_resistance"`
	TriggerDistance  int     `json:"trigger_distance"`
	InitialPage      int     `json:"initial_page"`
	PageSize         int     `json:"page_size"`
	SettleMillis     int     `json:"settle_ms"`
	WheelStep        int     `json:"wheel_step"`
	PullReleaseMilli int     `json:"pull_release_ms"`
}

const filename = "feed.json"

// Load reads <profileDir>/feed.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults()
	}
	cfg.normalize()
	return cfg
}

// Save writes cfg to <profileDir>/feed.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Options converts the list block into engine options.
func (lc ListConfig) Options() list.Options {
	o := list.DefaultOptions()
	o.Overscan = lc.Overscan
	o.PullThreshold = lc.PullThreshold
	o.PullResistance = lc.PullResistance
	o.PageLoadTriggerDistance = lc.TriggerDistance
	o.InitialPage = lc.InitialPage
	o.SettleDuration = time.Duration(lc.SettleMillis) * time.Millisecond
	o.WheelStep = lc.WheelStep
	o.PullReleaseDelay = time.Duration(lc.PullReleaseMilli) * time.Millisecond
	return o
}

func (c *Config) normalize() {
	d := defaults()
	switch c.DefaultFeed {
	case FeedCreators, FeedCalls, FeedTransactions:
	default:
		c.DefaultFeed = d.DefaultFeed
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	l, dl := &c.List, d.List
	if l.Overscan < 0 || l.Overscan > 50 {
		l.Overscan = dl.Overscan
	}
	if l.PullThreshold <= 0 {
		l.PullThreshold = dl.PullThreshold
	}
	if l.PullResistance <= 0 || l.PullResistance > 1 {
		l.PullResistance = dl.PullResistance
	}
	if l.TriggerDistance < 0 {
		l.TriggerDistance = dl.TriggerDistance
	}
	if l.InitialPage < 1 {
		l.InitialPage = dl.InitialPage
	}
	if l.PageSize < 1 || l.PageSize > 200 {
		l.PageSize = dl.PageSize
	}
	if l.SettleMillis < 0 {
		l.SettleMillis = dl.SettleMillis
	}
	if l.WheelStep < 1 {
		l.WheelStep = dl.WheelStep
	}
	if l.PullReleaseMilli <= 0 {
		l.PullReleaseMilli = dl.PullReleaseMilli
	}
}

func defaults() Config {
	o := list.DefaultOptions()
	return Config{
		Theme:       "auto",
		DefaultFeed: FeedCreators,
		List: ListConfig{
			Overscan:         o.Overscan,
			PullThreshold:    o.PullThreshold,
			PullResistance:   o.PullResistance,
			TriggerDistance:  o.PageLoadTriggerDistance,
			InitialPage:      o.InitialPage,
			PageSize:         20,
			SettleMillis:     int(o.SettleDuration / time.Millisecond),
			WheelStep:        o.WheelStep,
			PullReleaseMilli: int(o.PullReleaseDelay / time.Millisecond),
		},
	}
}
