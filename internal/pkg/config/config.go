package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	Reservation ReservationConfig
	Events      EventsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret               string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration time.Duration `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// ServicePricing selects how mechanic service requests are priced.
type ServicePricing string

const (
	// ServicePricingQuoted leaves the amount at zero until the mechanic quotes it on accept.
	ServicePricingQuoted ServicePricing = "quoted"
	// ServicePricingHourly prices at creation from the listing's hourly rate.
	ServicePricingHourly ServicePricing = "hourly"
)

type ReservationConfig struct {
	ServicePricing      ServicePricing `envconfig:"RESERVATION_SERVICE_PRICING" default:"quoted"`
	LateCancelWindow    time.Duration  `envconfig:"RESERVATION_LATE_CANCEL_WINDOW" default:"24h"`
	DefaultListLimit    int            `envconfig:"RESERVATION_DEFAULT_LIST_LIMIT" default:"20"`
	DefaultServiceHours int            `envconfig:"RESERVATION_DEFAULT_SERVICE_HOURS" default:"1"`
	StoreDriver         string         `envconfig:"STORE_DRIVER" default:"postgres"`
}

type EventsConfig struct {
	Enabled       bool          `envconfig:"EVENTS_ENABLED" default:"false"`
	KafkaBrokers  []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic    string        `envconfig:"KAFKA_TOPIC" default:"reservation-events"`
	RelayInterval time.Duration `envconfig:"EVENTS_RELAY_INTERVAL" default:"2s"`
	RelayBatch    int           `envconfig:"EVENTS_RELAY_BATCH" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c ReservationConfig) UsesMemoryStore() bool {
	return c.StoreDriver == "memory"
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Reservation.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c ReservationConfig) validate() error {
	switch c.ServicePricing {
	case ServicePricingQuoted, ServicePricingHourly:
	default:
		return fmt.Errorf("unsupported RESERVATION_SERVICE_PRICING %q", c.ServicePricing)
	}
	switch c.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.LateCancelWindow < 0 {
		return fmt.Errorf("RESERVATION_LATE_CANCEL_WINDOW must not be negative")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-testing-only",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Reservation: ReservationConfig{
			ServicePricing:      ServicePricingQuoted,
			LateCancelWindow:    24 * time.Hour,
			DefaultListLimit:    20,
			DefaultServiceHours: 1,
			StoreDriver:         "postgres",
		},
		Events: EventsConfig{
			Enabled:       false,
			KafkaBrokers:  []string{"localhost:9092"},
			KafkaTopic:    "reservation-events",
			RelayInterval: 2 * time.Second,
			RelayBatch:    100,
		},
	}
}
