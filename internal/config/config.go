package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	BotToken string `env:"BOT_TOKEN"`

	// Persisted state, rewritten wholesale on every mutation.
	FoodListPath  string `env:"FOOD_LIST_PATH,  default=data/foods.txt"`
	FoodCachePath string `env:"FOOD_CACHE_PATH, default=data/food_cache.json"`
	DebtsPath     string `env:"DEBTS_PATH,      default=data/debts.json"`

	// CacheTTL is how long a food suggestion stays sticky.
	CacheTTL time.Duration `env:"FOOD_CACHE_TTL, default=12h"`

	// RestrictedUsers are usernames denied command access,
	// comma-separated, matched case-insensitively.
	RestrictedUsers []string `env:"RESTRICTED_USERS, default=PhuongTung99"`

	// DenialMessage is the reply a restricted user gets.
	DenialMessage string `env:"DENIAL_MESSAGE, default=Bạn cần nạp VIP để thực hiện lệnh này"`

	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
}

func MustLoad() Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	if strings.TrimSpace(cfg.BotToken) == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	return cfg
}
