package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBSource string

	PlatformBaseURL string
	PlatformAPIKey  string

	AMQPUrl          string
	OrderEventsQueue string

	SupportPhone string
	PixTimeout   time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		Port:             getEnv("PORT", "8000"),
		DBSource:         getEnv("DB_SOURCE", "storefront.db"),
		PlatformBaseURL:  getEnv("PLATFORM_BASE_URL", "http://localhost:9000"),
		PlatformAPIKey:   os.Getenv("PLATFORM_API_KEY"),
		AMQPUrl:          os.Getenv("AMQP_URL"),
		OrderEventsQueue: getEnv("ORDER_EVENTS_QUEUE", "order_events"),
		SupportPhone:     os.Getenv("SUPPORT_PHONE"),
		PixTimeout:       300 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
