package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Property holds the static facts printed on contracts and receipts.
type Property struct {
	LandlordName        string
	PropertyName        string
	PropertyDescription string
	PixKey              string
	WifiName            string
	WifiPassword        string
	GateCode            string
}

type WhatsApp struct {
	APIURL        string
	PhoneNumberID string
	Token         string
}

type Config struct {
	ServerPort string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	OnRender    bool

	RabbitURL  string
	RedisURL   string
	StorageDir string

	RulesMarker string

	WhatsApp WhatsApp
	Property Property
}

const (
	DefaultLandlordName        = "Proprietário"
	DefaultPropertyName        = "Imóvel de temporada"
	DefaultPropertyDescription = "Imóvel residencial mobiliado para locação por temporada"
	DefaultPixKey              = "-"
	DefaultWifiName            = "-"
	DefaultWifiPassword        = "-"
	DefaultGateCode            = "-"
	DefaultRulesMarker         = "Condominium Rules"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found, using process environment")
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", ""),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "rental_db"),
		OnRender:    strings.EqualFold(getEnv("RENDER", "false"), "true") || getEnv("RENDER_EXTERNAL_URL", "") != "",
		RabbitURL:   getEnv("RABBITMQ_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		StorageDir:  getEnv("STORAGE_DIR", "storage"),
		RulesMarker: getEnv("RULES_MARKER", DefaultRulesMarker),
		WhatsApp: WhatsApp{
			APIURL:        getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
			PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
			Token:         getEnv("WHATSAPP_TOKEN", ""),
		},
		Property: Property{
			LandlordName:        getEnv("LANDLORD_NAME", DefaultLandlordName),
			PropertyName:        getEnv("PROPERTY_NAME", DefaultPropertyName),
			PropertyDescription: getEnv("PROPERTY_DESCRIPTION", DefaultPropertyDescription),
			PixKey:              getEnv("PIX_KEY", DefaultPixKey),
			WifiName:            getEnv("WIFI_NAME", DefaultWifiName),
			WifiPassword:        getEnv("WIFI_PASSWORD", DefaultWifiPassword),
			GateCode:            getEnv("GATE_CODE", DefaultGateCode),
		},
	}
}

// DatabaseTarget resolves which driver to open and with what DSN.
// DATABASE_URL wins; otherwise DB_HOST selects postgres; otherwise a local sqlite file.
func (c *Config) DatabaseTarget() (driver, dsn string) {
	if c.DatabaseURL != "" {
		if path, ok := strings.CutPrefix(c.DatabaseURL, "sqlite:///"); ok {
			return "sqlite", path
		}
		return "postgres", c.DatabaseURL
	}
	if c.DBHost != "" {
		return "postgres", fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
		)
	}
	if c.OnRender {
		return "sqlite", "/tmp/app.db"
	}
	return "sqlite", "app.db"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
