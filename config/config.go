package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config описывает настройки реестра
type Config struct {
	DataFile        string `yaml:"data_file"`
	SnapshotFile    string `yaml:"snapshot_file"`
	WorkbookFile    string `yaml:"workbook_file"`
	WorkbookCharset string `yaml:"workbook_charset"`
	SeedDemo        bool   `yaml:"seed_demo"`

	Web struct {
		Port int `yaml:"port"`
	} `yaml:"web"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig загружает настройки: значения по умолчанию, затем YAML-файл
// (если он есть), затем переменные окружения REGISTRY_*.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("не удалось прочитать файл настроек: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("не удалось распарсить настройки: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("не удалось прочитать переменные окружения: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("некорректные настройки: %w", err)
	}

	return config, nil
}

// setDefaults задаёт значения по умолчанию
func setDefaults(config *Config) {
	config.DataFile = "database.txt"
	config.SeedDemo = true
	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

func loadFromEnv(config *Config) error {
	stringVars := map[string]*string{
		"REGISTRY_DATA_FILE":        &config.DataFile,
		"REGISTRY_SNAPSHOT_FILE":    &config.SnapshotFile,
		"REGISTRY_WORKBOOK_FILE":    &config.WorkbookFile,
		"REGISTRY_WORKBOOK_CHARSET": &config.WorkbookCharset,
		"REGISTRY_LOG_LEVEL":        &config.Logging.Level,
		"REGISTRY_LOG_FORMAT":       &config.Logging.Format,
	}
	for name, target := range stringVars {
		if value, ok := os.LookupEnv(name); ok {
			*target = value
		}
	}

	if value, ok := os.LookupEnv("REGISTRY_WEB_PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("REGISTRY_WEB_PORT: %w", err)
		}
		config.Web.Port = port
	}

	if value, ok := os.LookupEnv("REGISTRY_SEED_DEMO"); ok {
		seed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("REGISTRY_SEED_DEMO: %w", err)
		}
		config.SeedDemo = seed
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.DataFile == "" {
		return errors.New("data_file не может быть пустым")
	}
	if config.Web.Port < 0 || config.Web.Port > 65535 {
		return fmt.Errorf("web.port должен быть от 0 до 65535, получено %d", config.Web.Port)
	}
	if _, err := parseLevel(config.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("неизвестный формат логов %q", config.Logging.Format)
	}
	return nil
}

// NewLogger создаёт slog.Logger по настройкам логирования
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.ToLower(c.Logging.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("неизвестный уровень логов %q", s)
	}
	return level, nil
}
