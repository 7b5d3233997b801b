package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Engine   EngineConfig
	Cache    CacheConfig
	Jobs     JobsConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AuthConfig holds the single operator credential. The password is
// stored as a bcrypt hash.
type AuthConfig struct {
	OperatorUsername     string
	OperatorPasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// EngineConfig carries scheduling defaults; request payloads may
// override individual fields per run.
type EngineConfig struct {
	WorkingDays          []string
	WorkStart            string
	WorkEnd              string
	LunchStart           string
	LunchEnd             string
	AllowedDurations     []int
	SlotStepMinutes      int
	MaxClassesPerDay     int
	BreakDurationMinutes int
	GroupSizeLimit       int
	CheckBudget          int
	ProposalTTL          time.Duration
}

// CacheConfig tunes the read-side timetable cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// JobsConfig tunes the async generation worker queue.
type JobsConfig struct {
	WorkerConcurrency int
	QueueSize         int
}

// ExportConfig controls timetable export rendering.
type ExportConfig struct {
	InstitutionName string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.Auth = AuthConfig{
		OperatorUsername:     v.GetString("OPERATOR_USERNAME"),
		OperatorPasswordHash: v.GetString("OPERATOR_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Engine = EngineConfig{
		WorkingDays:          splitAndTrim(v.GetString("ENGINE_WORKING_DAYS")),
		WorkStart:            v.GetString("ENGINE_WORK_START"),
		WorkEnd:              v.GetString("ENGINE_WORK_END"),
		LunchStart:           v.GetString("ENGINE_LUNCH_START"),
		LunchEnd:             v.GetString("ENGINE_LUNCH_END"),
		AllowedDurations:     splitInts(v.GetString("ENGINE_ALLOWED_DURATIONS")),
		SlotStepMinutes:      v.GetInt("ENGINE_SLOT_STEP_MINUTES"),
		MaxClassesPerDay:     v.GetInt("ENGINE_MAX_CLASSES_PER_DAY"),
		BreakDurationMinutes: v.GetInt("ENGINE_BREAK_MINUTES"),
		GroupSizeLimit:       v.GetInt("ENGINE_GROUP_SIZE_LIMIT"),
		CheckBudget:          v.GetInt("ENGINE_CHECK_BUDGET"),
		ProposalTTL:          parseDuration(v.GetString("ENGINE_PROPOSAL_TTL"), 30*time.Minute),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),
	}

	cfg.Jobs = JobsConfig{
		WorkerConcurrency: v.GetInt("JOBS_WORKER_CONCURRENCY"),
		QueueSize:         v.GetInt("JOBS_QUEUE_SIZE"),
	}

	cfg.Export = ExportConfig{
		InstitutionName: v.GetString("EXPORT_INSTITUTION_NAME"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "uni_timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("OPERATOR_USERNAME", "operator")
	v.SetDefault("OPERATOR_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENGINE_WORKING_DAYS", "Monday,Tuesday,Wednesday,Thursday,Friday")
	v.SetDefault("ENGINE_WORK_START", "09:00")
	v.SetDefault("ENGINE_WORK_END", "17:00")
	v.SetDefault("ENGINE_LUNCH_START", "13:00")
	v.SetDefault("ENGINE_LUNCH_END", "14:00")
	v.SetDefault("ENGINE_ALLOWED_DURATIONS", "60,90,120,180")
	v.SetDefault("ENGINE_SLOT_STEP_MINUTES", 15)
	v.SetDefault("ENGINE_MAX_CLASSES_PER_DAY", 8)
	v.SetDefault("ENGINE_BREAK_MINUTES", 15)
	v.SetDefault("ENGINE_GROUP_SIZE_LIMIT", 30)
	v.SetDefault("ENGINE_CHECK_BUDGET", 2000000)
	v.SetDefault("ENGINE_PROPOSAL_TTL", "30m")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("JOBS_WORKER_CONCURRENCY", 2)
	v.SetDefault("JOBS_QUEUE_SIZE", 16)

	v.SetDefault("EXPORT_INSTITUTION_NAME", "University Timetable")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func splitInts(raw string) []int {
	var result []int
	for _, part := range splitAndTrim(raw) {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			continue
		}
		result = append(result, n)
	}
	return result
}
