// config предоставляет структуру конфигурации spaceflight-bot
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация бота.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env       string          `yaml:"env"       env:"ENV" env-default:"local"`
	Discord   DiscordConfig   `yaml:"discord"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Paginator PaginatorConfig `yaml:"paginator"`
}

// DiscordConfig — параметры подключения к Discord.
type DiscordConfig struct {
	// Token — токен бота. Обязателен: без него процесс не стартует.
	Token string `yaml:"token" env:"DISCORD_TOKEN" env-required:"true"`
	// GuildID — если задан, slash-команды регистрируются только в этой гильдии
	// (удобно при разработке: глобальная регистрация распространяется до часа).
	GuildID string `yaml:"guild_id" env:"DISCORD_GUILD_ID"`
	// Prefix — префикс текстовых команд (legacy-вызовы вида "!fetch").
	Prefix string `yaml:"prefix" env:"COMMAND_PREFIX" env-default:"!"`
}

// ScraperConfig — параметры опроса источника запусков.
type ScraperConfig struct {
	// BaseURL — origin источника; от него же резолвятся относительные ссылки карточек.
	BaseURL string `yaml:"base_url" env:"SCRAPER_BASE_URL" env-default:"https://nextspaceflight.com"`
	// LaunchesPath — путь страницы со списком запусков.
	LaunchesPath string `yaml:"launches_path" env:"SCRAPER_LAUNCHES_PATH" env-default:"/launches/"`
	// Timeout — общий таймаут HTTP-запроса к источнику.
	Timeout time.Duration `yaml:"timeout" env:"SCRAPER_TIMEOUT" env-default:"15s"`
}

// PaginatorConfig — параметры сессии пагинации.
type PaginatorConfig struct {
	// IdleTimeout — окно простоя: без нажатий в течение этого времени сессия завершается.
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"PAGINATOR_IDLE_TIMEOUT" env-default:"1h"`
	// Buffer — размер буфера нажатий на сессию; лишние нажатия отбрасываются.
	Buffer int `yaml:"buffer" env:"PAGINATOR_BUFFER" env-default:"16"`
}

// LaunchesURL возвращает абсолютный адрес страницы со списком запусков.
func (s ScraperConfig) LaunchesURL() string {
	return strings.TrimSuffix(s.BaseURL, "/") + s.LaunchesPath
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	u, err := url.Parse(c.Scraper.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("scraper.base_url must be an absolute http(s) URL")
	}
	if !strings.HasPrefix(c.Scraper.LaunchesPath, "/") {
		return fmt.Errorf("scraper.launches_path must start with /")
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be > 0")
	}
	if c.Paginator.IdleTimeout < time.Second {
		return fmt.Errorf("paginator.idle_timeout must be at least 1s")
	}
	if c.Paginator.Buffer <= 0 {
		return fmt.Errorf("paginator.buffer must be > 0")
	}
	return nil
}
