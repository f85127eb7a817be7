// Load envs from .env
// Load YAML config
// Apply env overrides and defaults
// Validate config

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	//Browser profiles
	ProfileDir           string `yaml:"profile_dir"`
	FallbackProfileDir   string `yaml:"fallback_profile_dir"`
	AlternateBrowserPath string `yaml:"alternate_browser_path"`

	//Launch
	Headless         bool          `yaml:"headless"`
	ViewportWidth    int           `yaml:"viewport_width"`
	ViewportHeight   int           `yaml:"viewport_height"`
	LaunchTimeout    time.Duration `yaml:"launch_timeout"`
	LaunchRetryPause time.Duration `yaml:"launch_retry_pause"`

	//Caps
	ItemsOnPage  int `yaml:"items_on_page"`
	MaxLinksScan int `yaml:"max_links_scan"`
	SnippetLimit int `yaml:"snippet_limit"`

	//Page timeouts
	NavigationTimeout     time.Duration `yaml:"navigation_timeout"`
	SettleTimeout         time.Duration `yaml:"settle_timeout"`
	SettleDelay           time.Duration `yaml:"settle_delay"`
	ListingWait           time.Duration `yaml:"listing_wait"`
	ClickTimeout          time.Duration `yaml:"click_timeout"`
	FillTimeout           time.Duration `yaml:"fill_timeout"`
	FallbackFillTimeout   time.Duration `yaml:"fallback_fill_timeout"`
	ConfirmTimeout        time.Duration `yaml:"confirm_timeout"`
	AfterApplyDelay       time.Duration `yaml:"after_apply_delay"`
	MinNavigationInterval time.Duration `yaml:"min_navigation_interval"`

	//Interpreter
	DefaultQuery string `yaml:"default_query"`
	RoleSuffix   string `yaml:"role_suffix"`
	DefaultGoal  string `yaml:"default_goal"`
	TopDefault   int    `yaml:"top_default"`

	//Behaviour
	Submit          bool   `yaml:"submit"`
	Humanize        bool   `yaml:"humanize"`
	CoverLetter     string `yaml:"cover_letter"`
	CoverLetterPath string `yaml:"cover_letter_path"`

	//Paths
	CookiesPath   string `yaml:"cookies_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	//Notifications (optional)
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

var defaultCoverLetter = strings.Join([]string{
	"Здравствуйте!",
	"Интересна позиция Python-разработчика: пишу production-код и довожу задачи до результата.",
	"Опыт: backend/API, интеграции, фоновые задачи, БД, оптимизация и отладка.",
	"Работаю с Django/FastAPI, уделяю внимание качеству, тестированию и логированию.",
	"При необходимости подключаю LLM-интеграции (RAG, инструменты, оценка качества).",
	"Готов быстро пройти интервью и выполнить тестовое задание.",
	"Спасибо! Буду рад обсудить детали.",
}, "\n")

// Default returns a config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads .env, the yaml file at path (a missing file only warns),
// applies env overrides and defaults, then validates.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		log.Printf("⚠️ Config file %s not found, using defaults", path)
	} else if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.CoverLetterPath != "" {
		letter, err := os.ReadFile(cfg.CoverLetterPath)
		if err != nil {
			return nil, fmt.Errorf("read cover letter: %w", err)
		}
		cfg.CoverLetter = strings.TrimSpace(string(letter))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode rejects keys that no field reads.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HH_AGENT_PROFILE_DIR"); v != "" {
		c.ProfileDir = v
	}
	if v := os.Getenv("HH_AGENT_FALLBACK_PROFILE_DIR"); v != "" {
		c.FallbackProfileDir = v
	}
	if v := os.Getenv("HH_AGENT_BROWSER_PATH"); v != "" {
		c.AlternateBrowserPath = v
	}
	if v := os.Getenv("HH_AGENT_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HH_AGENT_HEADLESS: %w", err)
		}
		c.Headless = b
	}
	if v := os.Getenv("HH_AGENT_SUBMIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HH_AGENT_SUBMIT: %w", err)
		}
		c.Submit = b
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ProfileDir == "" {
		c.ProfileDir = "./browser_profile_pw"
	}
	if c.FallbackProfileDir == "" {
		c.FallbackProfileDir = "./browser_profile_pw_fallback"
	}
	if c.AlternateBrowserPath == "" {
		c.AlternateBrowserPath = filepath.FromSlash(os.ExpandEnv("${LOCALAPPDATA}/Yandex/YandexBrowser/Application/browser.exe"))
	}
	c.ProfileDir = absPath(c.ProfileDir)
	c.FallbackProfileDir = absPath(c.FallbackProfileDir)

	if c.ViewportWidth == 0 {
		c.ViewportWidth = 1280
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = 900
	}
	setDuration(&c.LaunchTimeout, 180*time.Second)
	setDuration(&c.LaunchRetryPause, time.Second)

	if c.ItemsOnPage == 0 {
		c.ItemsOnPage = 20
	}
	if c.MaxLinksScan == 0 {
		c.MaxLinksScan = 260
	}
	if c.SnippetLimit == 0 {
		c.SnippetLimit = 450
	}

	setDuration(&c.NavigationTimeout, 60*time.Second)
	setDuration(&c.SettleTimeout, 20*time.Second)
	setDuration(&c.SettleDelay, 500*time.Millisecond)
	setDuration(&c.ListingWait, 20*time.Second)
	setDuration(&c.ClickTimeout, 12*time.Second)
	setDuration(&c.FillTimeout, 12*time.Second)
	setDuration(&c.FallbackFillTimeout, 6*time.Second)
	setDuration(&c.ConfirmTimeout, 9*time.Second)
	setDuration(&c.AfterApplyDelay, 900*time.Millisecond)

	if c.DefaultQuery == "" {
		c.DefaultQuery = "Python разработчик"
	}
	if c.RoleSuffix == "" {
		c.RoleSuffix = "разработчик"
	}
	if c.DefaultGoal == "" {
		c.DefaultGoal = "Открой hh.ru и найди 5 вакансий Python разработчик в Москве, удалёнка, middle"
	}
	if c.TopDefault == 0 {
		c.TopDefault = 5
	}
	if c.CoverLetter == "" {
		c.CoverLetter = defaultCoverLetter
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = filepath.Join("logs", "screenshots")
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.ItemsOnPage <= 0 || c.MaxLinksScan <= 0 || c.SnippetLimit <= 0 {
		return fmt.Errorf("items_on_page, max_links_scan and snippet_limit must be positive")
	}
	if c.MaxLinksScan < c.ItemsOnPage {
		return fmt.Errorf("max_links_scan (%d) must not be below items_on_page (%d)", c.MaxLinksScan, c.ItemsOnPage)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	for name, d := range map[string]time.Duration{
		"launch_timeout":     c.LaunchTimeout,
		"navigation_timeout": c.NavigationTimeout,
		"settle_timeout":     c.SettleTimeout,
		"listing_wait":       c.ListingWait,
		"click_timeout":      c.ClickTimeout,
		"fill_timeout":       c.FillTimeout,
		"confirm_timeout":    c.ConfirmTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.ProfileDir == c.FallbackProfileDir {
		return fmt.Errorf("profile_dir and fallback_profile_dir must differ (%s)", c.ProfileDir)
	}
	return nil
}

// NotificationsEnabled reports whether both telegram settings are present.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func setDuration(d *time.Duration, def time.Duration) {
	if *d == 0 {
		*d = def
	}
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
