package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения.
type Config struct {
	Port    string
	AppName string

	// Ключи прямых API источников. Пустой ключ означает, что источник
	// сразу идет по запасному пути (scraping-сервис).
	EquipmentWatchAPIKey  string
	MascusAPIKey          string
	MachineryTraderAPIKey string
	IronPlanetAPIKey      string

	// ScrapeServiceURL - базовый URL внешнего scraping-сервиса,
	// общий запасной путь для всех источников.
	ScrapeServiceURL string

	// ValuationServiceURL - внешний сервис оценки стоимости
	// (независимый путь, когда рыночных данных нет).
	ValuationServiceURL string

	// SourceTimeout - бюджет времени на все обращения одного адаптера
	// (основной запрос плюс, при необходимости, запасной).
	SourceTimeout time.Duration

	MarketValue MarketValueConfig

	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// MarketValueConfig - политика расширения ценового диапазона вокруг
// наблюдаемых min/max. Значения по умолчанию 0.9/1.1 - это константы
// продуктовой политики, не выведенный алгоритм.
type MarketValueConfig struct {
	LowerBandFactor float64
	UpperBandFactor float64
}

type StdoutLogConfig struct {
	Level string // По умолчанию DEBUG
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string // По умолчанию INFO
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Рекомендуется использовать .env файл для локальной разработки.
func LoadConfig(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:    getEnv("SEARCH_SERVICE_PORT", "8085"),
		AppName: getEnv("APP_NAME", "equipment-search-service"),

		EquipmentWatchAPIKey:  getEnv("EQUIPMENT_WATCH_API_KEY", ""),
		MascusAPIKey:          getEnv("MASCUS_API_KEY", ""),
		MachineryTraderAPIKey: getEnv("MACHINERY_TRADER_API_KEY", ""),
		IronPlanetAPIKey:      getEnv("IRON_PLANET_API_KEY", ""),

		ScrapeServiceURL:    getEnv("SCRAPE_SERVICE_URL", "http://localhost:8090"),
		ValuationServiceURL: getEnv("VALUATION_SERVICE_URL", "http://localhost:8091"),

		SourceTimeout: time.Duration(getEnvAsInt("SOURCE_TIMEOUT_SECONDS", 15)) * time.Second,
	}

	cfg.MarketValue.LowerBandFactor = getEnvAsFloat("MARKET_VALUE_LOWER_BAND", 0.9)
	cfg.MarketValue.UpperBandFactor = getEnvAsFloat("MARKET_VALUE_UPPER_BAND", 1.1)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnv("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnv("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnv - вспомогательная функция для чтения переменных окружения с значением по умолчанию.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueFloat, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as float: %v. Using default value: %f\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueFloat
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
