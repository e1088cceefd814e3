package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSlots is the daily bookable slot catalog used unless overridden.
var DefaultSlots = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

type Config struct {
	HTTPAddr  string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	Slots     []string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CAREPLUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":6060")
	v.SetDefault("db.path", "./careplus.db")
	v.SetDefault("jwt.secret", "careplus-dev-secret")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("slots", strings.Join(DefaultSlots, " "))

	_ = v.BindEnv("http.addr", "CAREPLUS_HTTP_ADDR", "HTTP_ADDR")
	_ = v.BindEnv("db.path", "CAREPLUS_DB_PATH", "DB_PATH")
	_ = v.BindEnv("jwt.secret", "CAREPLUS_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("jwt.ttl", "CAREPLUS_JWT_TTL")
	_ = v.BindEnv("slots", "CAREPLUS_SLOTS")

	ttl, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, err
	}

	slots := strings.Fields(v.GetString("slots"))
	if len(slots) == 0 {
		slots = DefaultSlots
	}

	return Config{
		HTTPAddr:  strings.TrimSpace(v.GetString("http.addr")),
		DBPath:    v.GetString("db.path"),
		JWTSecret: v.GetString("jwt.secret"),
		TokenTTL:  ttl,
		Slots:     slots,
	}, nil
}
