package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "5000"
	defaultAppEnv          = "local"
	defaultStoreDriver     = "mongo"
	defaultDBHost          = "cluster0.mongodb.net"
	defaultDBName          = "hitTheTrail"
	defaultCurrency        = "usd"
	defaultRateLimit       = 200
	defaultMaxBodyBytes    = 4 << 20
	defaultShutdownTimeout = 10 * time.Second
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json, .env and the process environment over the
// built-in defaults. It only reads the sources once per process.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"PORT":             defaultPort,
		"APP_ENV":          defaultAppEnv,
		"DB_DRIVER":        defaultStoreDriver,
		"DB_HOST":          defaultDBHost,
		"DB_NAME":          defaultDBName,
		"PAYMENT_CURRENCY": defaultCurrency,
	}
}

func Port() string {
	_ = Load()
	return get("PORT", defaultPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

// StoreDriver returns "mongo" or "memory". Unknown values fall back to mongo.
func StoreDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultStoreDriver))
	switch driver {
	case "mongo", "memory":
		return driver
	default:
		return defaultStoreDriver
	}
}

// MongoURI returns MONGO_URI when set, otherwise builds an Atlas SRV URI from
// DB_USER, DB_PASS and DB_HOST.
func MongoURI() string {
	_ = Load()

	if override := get("MONGO_URI", ""); override != "" {
		return override
	}

	user := get("DB_USER", "")
	pass := get("DB_PASS", "")
	host := get("DB_HOST", defaultDBHost)
	if user == "" {
		return fmt.Sprintf("mongodb+srv://%s/?retryWrites=true&w=majority", host)
	}
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority",
		url.UserPassword(user, pass).String(), host)
}

func DBName() string {
	_ = Load()
	return get("DB_NAME", defaultDBName)
}

func StripeSecretKey() string {
	_ = Load()
	return get("STRIPE_SECRET_KEY", "")
}

func PaymentCurrency() string {
	_ = Load()
	return strings.ToLower(get("PAYMENT_CURRENCY", defaultCurrency))
}

func PaymentMock() bool {
	_ = Load()
	return getBool("PAYMENT_MOCK")
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", "")
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// RateLimit is the number of requests a single client may make per minute.
func RateLimit() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT", ""))
	if err != nil || n <= 0 {
		return defaultRateLimit
	}
	return n
}

// TrustProxy reports whether X-Forwarded-For may identify the client. Only
// enable it behind a proxy that overwrites the header.
func TrustProxy() bool {
	_ = Load()
	return getBool("TRUST_PROXY")
}

func MaxBodyBytes() int64 {
	_ = Load()
	n, err := strconv.ParseInt(get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBodyBytes
	}
	return n
}

func LogToMongo() bool {
	_ = Load()
	return getBool("LOG_MONGO")
}

func ShutdownTimeout() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", ""))
	if err != nil || d <= 0 {
		return defaultShutdownTimeout
	}
	return d
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key at runtime. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeProcessEnv(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

// mergeProcessEnv lets the real environment win over files, which is how the
// hosting platform injects PORT and the credentials.
func mergeProcessEnv(out map[string]string) {
	for _, kv := range os.Environ() {
		idx := strings.IndexByte(kv, '=')
		if idx <= 0 {
			continue
		}
		key := kv[:idx]
		if _, known := knownKeys[key]; !known {
			continue
		}
		out[key] = kv[idx+1:]
	}
}

var knownKeys = map[string]struct{}{
	"PORT": {}, "APP_ENV": {}, "DB_DRIVER": {}, "DB_USER": {}, "DB_PASS": {},
	"DB_HOST": {}, "DB_NAME": {}, "MONGO_URI": {}, "STRIPE_SECRET_KEY": {},
	"PAYMENT_CURRENCY": {}, "PAYMENT_MOCK": {}, "REDIS_ADDR": {},
	"REDIS_PASSWORD": {}, "RATE_LIMIT": {}, "MAX_BODY_BYTES": {},
	"LOG_MONGO": {}, "SHUTDOWN_TIMEOUT": {}, "TRUST_PROXY": {},
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getBool(key string) bool {
	b, err := strconv.ParseBool(get(key, "false"))
	return err == nil && b
}
