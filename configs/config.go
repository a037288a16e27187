package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	LogMode   string

	CORSOrigins []string

	// optional Redis for sessions + realtime fan-out
	RedisAddr    string
	RedisChannel string

	// optional AWS: SES for reset mails, S3 for menu pictures
	AWSRegion    string
	SESFromEmail string
	S3Bucket     string
	S3PublicURL  string
	UploadDir    string

	ResetTokenTTL time.Duration

	ChefEmail    string
	ChefPassword string
}

// LoadConfig reads envFile (if it exists) and then the process environment.
func LoadConfig(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("could not read %s: %v", envFile, err)
	}

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBSource:      getEnv("DB_SOURCE", "mensa.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		LogMode:       getEnv("LOG_MODE", "development"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisChannel:  getEnv("REDIS_CHANNEL", "mensa:ratings"),
		AWSRegion:     getEnv("AWS_REGION", "eu-central-1"),
		SESFromEmail:  os.Getenv("SES_FROM_EMAIL"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3PublicURL:   os.Getenv("S3_PUBLIC_URL"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		ResetTokenTTL: time.Duration(getEnvInt("RESET_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		ChefEmail:     os.Getenv("CHEF_EMAIL"),
		ChefPassword:  os.Getenv("CHEF_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return i
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
