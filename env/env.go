package env

import (
	stdErrors "errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Env struct {
	Server  ServerConfig  `mapstructure:"server"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

type MongoDBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"name"`
}

// URI builds the connection string, adding credentials only when a user is set.
func (c MongoDBConfig) URI() string {

	if c.User == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
	}

	return fmt.Sprintf("mongodb://%s@%s:%d", url.UserPassword(c.User, c.Password).String(), c.Host, c.Port)
}

type SessionConfig struct {
	// Store is either "cookie" or "mongo"
	Store  string `mapstructure:"store"`
	Secret string `mapstructure:"secret"`
	MaxAge int    `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CatalogConfig struct {
	PageSize     int    `mapstructure:"page_size"`
	TitleKeyword string `mapstructure:"title_keyword"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.shutdown_timeout": 10,
	"mongodb.host":            "localhost",
	"mongodb.port":            27017,
	"mongodb.user":            "",
	"mongodb.password":        "",
	"mongodb.name":            "go-library_data",
	"session.store":           "cookie",
	"session.secret":          "change-me-in-production",
	"session.max_age":         14 * 24 * 60 * 60,
	"log.level":               "info",
	"log.format":              "console",
	"catalog.page_size":       10,
	"catalog.title_keyword":   "life",
}

// Load reads the configuration from defaults, an optional config file and the
// environment. MONGODB_NAME, SERVER_PORT, SESSION_SECRET and so on override the file.
func Load(configFile string) (*Env, error) {

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("library")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {

		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stdErrors.As(err, &notFound) {
			return nil, err
		}
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return nil, err
	}

	if err := env.validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

func (e Env) validate() error {

	if e.Server.Port < 1 || e.Server.Port > 65535 {
		return fmt.Errorf("server port %d is invalid", e.Server.Port)
	}

	if e.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog page size can be only positive integer")
	}

	switch e.Session.Store {
	case "cookie", "mongo":
	default:
		return fmt.Errorf("session store %q is unsupported", e.Session.Store)
	}

	return nil
}

var loaded *Env

// GetEnv returns the configuration loaded from the environment, reading it once.
func GetEnv() (*Env, error) {

	if loaded == nil {

		env, err := Load("")
		if err != nil {
			return nil, err
		}

		loaded = env
	}

	return loaded, nil
}
