package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	CameraDevice int    // номер камеры
	FramesDir    string // каталог с кадрами вместо камеры
	Headless     bool   // без окон

	CredentialsFile string // ключ сервисного аккаунта Google
	SpreadsheetID   string
	SheetRange      string

	SQLitePath string
	DryRun     bool // записи только в память

	TelegramToken  string
	TelegramChatID int64

	LogLevel string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		CameraDevice:    1,
		FramesDir:       os.Getenv("FRAMES_DIR"),
		CredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		SheetRange:      getenv("SHEETS_RANGE", "Sheet1"),
		SQLitePath:      os.Getenv("SQLITE_PATH"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	var err error
	if v := os.Getenv("CAMERA_DEVICE"); v != "" {
		if cfg.CameraDevice, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("CAMERA_DEVICE: %w", err)
		}
	}
	if cfg.Headless, err = getBool("HEADLESS"); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = getBool("DRY_RUN"); err != nil {
		return nil, err
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет, что записям есть куда попасть
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" && c.SQLitePath == "" && !c.DryRun {
		return errors.New("SHEETS_SPREADSHEET_ID, SQLITE_PATH or DRY_RUN is required")
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required with TELEGRAM_TOKEN")
	}
	if c.CameraDevice < 0 {
		return fmt.Errorf("CAMERA_DEVICE must not be negative, got %d", c.CameraDevice)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
