package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// Cart persistence. CartBackend selects "file" or "redis".
	CartBackend     string
	CartStoragePath string
	CartStorageKey  string
	RedisAddr       string

	// Warehouse queue. Publishing is disabled when AMQPURL is empty.
	AMQPURL        string
	WarehouseQueue string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		CartBackend:     getEnv("CART_BACKEND", "file"),
		CartStoragePath: getEnv("CART_STORAGE_PATH", "cart.json"),
		CartStorageKey:  getEnv("CART_STORAGE_KEY", "yard-sale-cart"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		WarehouseQueue: getEnv("WAREHOUSE_QUEUE", "warehouse_orders"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
