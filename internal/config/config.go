package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DBDSN        string `envconfig:"DB_DSN" default:"redheart.db"`
	MediaDir     string `envconfig:"MEDIA_DIR" default:"./web/media"`
	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./web/static"`
	LogFile      string `envconfig:"LOG_FILE" default:"./redheart.log"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	// Upper bound for any request body. Must stay above the 10MB image limit
	// so oversized images reach validation instead of a bare 413.
	MaxUploadBytes int `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`

	Backend Backend
	Storage Storage
	Kafka   Kafka

	OrderUpdatePolicy string `envconfig:"ORDER_UPDATE_POLICY" default:"block"`
	ProductsPageSize  int    `envconfig:"PRODUCTS_PAGE_SIZE" default:"20"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	CookieSecure  bool   `envconfig:"COOKIE_SECURE" default:"false"`
}

type Backend struct {
	URL     string        `envconfig:"BACKEND_URL" default:"http://localhost:5000/api"`
	Token   string        `envconfig:"BACKEND_TOKEN"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0s"`
}

type Storage struct {
	Bucket        string `envconfig:"S3_BUCKET"`
	Region        string `envconfig:"S3_REGION" default:"ap-south-1"`
	Endpoint      string `envconfig:"S3_ENDPOINT"`
	PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
}

type Kafka struct {
	Brokers string `envconfig:"KAFKA_BROKERS"`
	Topic   string `envconfig:"KAFKA_TOPIC" default:"admin-events"`
}

// BrokerList splits the comma separated broker setting.
func (k Kafka) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using environment variables")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	log.Printf("[config] PORT=%s DB_DSN=%s BACKEND_URL=%s BACKEND_TOKEN=%s S3_BUCKET=%s KAFKA_BROKERS=%s ORDER_UPDATE_POLICY=%s",
		cfg.Port, cfg.DBDSN, cfg.Backend.URL, mask(cfg.Backend.Token), cfg.Storage.Bucket, cfg.Kafka.Brokers, cfg.OrderUpdatePolicy)
	return cfg, nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
