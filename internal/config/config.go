package config

import (
	"encoding/json"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"skyguard"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass" json:"-"`
}

type svcConfig struct {
	Address         string   `envconfig:"SKYGUARD_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"SKYGUARD_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string   `envconfig:"SKYGUARD_BASE_URL" default:"http://localhost:3443"`
	LogLevel        string   `envconfig:"SKYGUARD_LOG_LEVEL" default:"info"`
	AllowedOrigins  []string `envconfig:"SKYGUARD_ALLOWED_ORIGINS" default:"http://localhost:8080,http://localhost:5173"`
	MigrationFolder string   `envconfig:"SKYGUARD_MIGRATIONS_FOLDER" default:""`
	PathPrefix      string   `envconfig:"SKYGUARD_PATH_PREFIX" default:""`
	// StrictBuildingType rejects unknown building types instead of pricing them as a house.
	StrictBuildingType bool `envconfig:"SKYGUARD_STRICT_BUILDING_TYPE" default:"true"`
	Auth               Auth
	Contact            Contact
	Events             Events
}

type Auth struct {
	AuthenticationType string        `envconfig:"SKYGUARD_AUTH" default:""`
	Secret             string        `envconfig:"SKYGUARD_AUTH_SECRET" default:"" json:"-"`
	TokenTTL           time.Duration `envconfig:"SKYGUARD_AUTH_TOKEN_TTL" default:"24h"`
}

// Contact holds the company contact details shown on the landing page.
type Contact struct {
	CompanyName string `envconfig:"SKYGUARD_COMPANY_NAME" default:"Chasta SkyGuard"`
	Phone       string `envconfig:"SKYGUARD_CONTACT_PHONE" default:"+62 812-2155-6554"`
	WhatsApp    string `envconfig:"SKYGUARD_CONTACT_WHATSAPP" default:"6281221556554"`
}

type Events struct {
	Enabled bool   `envconfig:"SKYGUARD_EVENTS_ENABLED" default:"true"`
	Topic   string `envconfig:"SKYGUARD_EVENTS_TOPIC" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a fresh configuration built from the environment, bypassing the singleton.
func NewDefault() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}
