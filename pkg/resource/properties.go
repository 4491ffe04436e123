package resource

import (
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var (
	props      = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// init loads application properties from YAML. A missing file leaves only
// the defaults registered with SetDefault.
func init() {
	value, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = defaultPropertiesPath
	}
	if err := Init(value); err != nil {
		log.Printf("properties not loaded from %s: %v", value, err)
	}
}

// Init reads the YAML file at filepath and resolves ${ENV:default} placeholders.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)

	for key, value := range resolved {
		props.Set(key, value)
	}
	return nil
}

// parsePropertiesMap flattens the YAML tree into dotted keys
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolvedValue, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolvedValue
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			result[fullKey] = v
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable replaces a ${NAME:default} value with the environment
// variable NAME, or default when unset. Plain values are returned as-is.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(strings.TrimSpace(value))
	if matches == nil {
		return value, true
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue, true
	}
	if matches[2] != "" {
		return matches[2], true
	}
	return "", false
}

// Set overrides a property at runtime
func Set(key string, value any) {
	props.Set(key, value)
}

// SetDefault registers a fallback used when the key is absent from the file
func SetDefault(key string, value any) {
	props.SetDefault(key, value)
}

func IsSet(key string) bool {
	return props.IsSet(key)
}

func Get(key string) any {
	return props.Get(key)
}

func GetString(key string) string {
	return props.GetString(key)
}

// GetStringOrDefault returns the property or defaultValue when it is empty
func GetStringOrDefault(key string, defaultValue string) string {
	if value := props.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return props.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return props.GetDuration(key)
}

func GetInt(key string) int {
	return props.GetInt(key)
}

// GetIntOrDefault returns the property or defaultValue when it is zero
func GetIntOrDefault(key string, defaultValue int) int {
	if value := props.GetInt(key); value != 0 {
		return value
	}
	return defaultValue
}

func GetInt64(key string) int64 {
	return props.GetInt64(key)
}

func GetFloat64(key string) float64 {
	return props.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return props.GetStringSlice(key)
}
