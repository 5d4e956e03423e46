package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort         string
	StoreDriver     string // gorm | memory
	DBDSN           string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	JWTExpiresMin   int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
	PlatformFeePct  int // platform commission on orders, percent
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	feePct, _ := strconv.Atoi(get("PLATFORM_FEE_PCT", "10"))
	cfg := Config{
		AppPort:         get("APP_PORT", "8080"),
		StoreDriver:     get("STORE_DRIVER", "gorm"),
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   expires,
		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),
		PlatformFeePct:  feePct,
	}
	// the memory driver needs no DSN
	if cfg.StoreDriver == "memory" {
		cfg.DBDSN = get("DB_DSN", "")
	} else {
		cfg.DBDSN = must("DB_DSN")
	}
	return cfg
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
