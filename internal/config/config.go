package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
	// cron spec for deleting expired login sessions
	PurgeSchedule string `mapstructure:"purge_schedule"`
}

type SecurityConfig struct {
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text / json
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

// CatalogConfig points at the CSV seed files for the food/exercise catalog.
type CatalogConfig struct {
	SeedDir string `mapstructure:"seed_dir"`
	Watch   bool   `mapstructure:"watch"`
}

type BoundsConfig struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// ProfileConfig holds the goals and body values a new profile starts with.
type ProfileConfig struct {
	DailyCalorieGoal float64      `mapstructure:"daily_calorie_goal"`
	ProteinGoal      float64      `mapstructure:"protein_goal"`
	CarbsGoal        float64      `mapstructure:"carbs_goal"`
	FatGoal          float64      `mapstructure:"fat_goal"`
	Weight           float64      `mapstructure:"weight"`
	Height           float64      `mapstructure:"height"`
	WeightBounds     BoundsConfig `mapstructure:"weight_bounds"`
	HeightBounds     BoundsConfig `mapstructure:"height_bounds"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `mapstructure:"login_rps"`
	LoginBurst int     `mapstructure:"login_burst"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Security  SecurityConfig  `mapstructure:"security"`
	Log       LogConfig       `mapstructure:"log"`
	Backup    BackupConfig    `mapstructure:"backup"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Profile   ProfileConfig   `mapstructure:"profile"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig *Config
	once      sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.path", "data/besfit.db")

	// registered so BF_JWT_SECRET / BF_SECURITY_ENCRYPTION_KEY reach Unmarshal
	v.SetDefault("jwt.secret", "")
	v.SetDefault("security.encryption_key", "")

	v.SetDefault("jwt.issuer", "besfit")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("jwt.purge_schedule", "@every 1h")

	v.SetDefault("security.bcrypt_cost", 10)

	v.SetDefault("log.file", "logs/besfit.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("backup.dir", "data/backups")

	v.SetDefault("catalog.seed_dir", "data/catalog")
	v.SetDefault("catalog.watch", true)

	v.SetDefault("profile.daily_calorie_goal", 2000)
	v.SetDefault("profile.protein_goal", 150)
	v.SetDefault("profile.carbs_goal", 250)
	v.SetDefault("profile.fat_goal", 65)
	v.SetDefault("profile.weight", 70.0)
	v.SetDefault("profile.height", 175.0)
	v.SetDefault("profile.weight_bounds.min", 20)
	v.SetDefault("profile.weight_bounds.max", 400)
	v.SetDefault("profile.height_bounds.min", 50)
	v.SetDefault("profile.height_bounds.max", 260)

	v.SetDefault("ratelimit.login_rps", 1)
	v.SetDefault("ratelimit.login_burst", 5)
}

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
// A missing config file is not an error; defaults and BF_* environment
// variables still apply.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		appConfig, err = read(path)
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

func read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. BF_SERVER_PORT=9000
	v.SetEnvPrefix("BF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return &c, nil
}

// isNotFound reports whether err means the config file does not exist.
// SetConfigFile with a missing path yields an fs error rather than
// viper.ConfigFileNotFoundError, so both are accepted.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
