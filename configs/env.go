package configs

import (
	"log"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment setting the service reads.
type Config struct {
	Port              string `envconfig:"PORT" default:"3000"`
	MongoURI          string `envconfig:"MONGOURI" default:"mongodb://localhost:27017"`
	DBName            string `envconfig:"DB_NAME" default:"foojra"`
	JWTSecret         string `envconfig:"JWT_SECRET" default:"change-me"`
	RazorpayKeyID     string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET"`
}

var (
	cfg     Config
	cfgOnce sync.Once
)

// Env loads .env once and returns the processed configuration.
func Env() Config {
	cfgOnce.Do(func() {
		// .env is optional outside local development
		_ = godotenv.Load()
		if err := envconfig.Process("", &cfg); err != nil {
			log.Fatal("Error processing environment config: ", err)
		}
	})
	return cfg
}
