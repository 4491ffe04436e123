package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
}

var Env *EnvConfig

func init() {
	// .env is optional, real environment variables take precedence
	if err := godotenv.Load(envFile()); err != nil && !os.IsNotExist(err) {
		log.Printf("env file not loaded: %v", err)
	}

	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "city-api"),
		ContextPath:     getStringOrDefault("CONTEXT_PATH", "/city-api"),
	}
}

func envFile() string {
	if path, ok := os.LookupEnv("ENV_FILE_PATH"); ok {
		return path
	}
	return ".env"
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
