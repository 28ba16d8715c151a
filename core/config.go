package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	// CohortConfig holds the default cohort sizing policy.
	CohortConfig struct {
		Ideal   int
		MinSize int
		MaxSize int
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		WorkDir      string
		RollbarToken string
		Server       ServerConfig
		Cohort       CohortConfig
	}
)

func newViper(env string) *viper.Viper {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("appName", "Masomo")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("cohort.ideal", 20)
	v.SetDefault("cohort.minSize", 5)
	v.SetDefault("cohort.maxSize", 30)

	// DEV_SERVER_ADDRESS -> server.address
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewConfig loads the configuration of the current environment (`ENV`).
// Values are read from env vars prefixed with the environment name,
// after loading `config/.env.<env>` from the project root if it exists.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	wd, err := Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "finding project root")
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v := newViper(env)
	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		WorkDir:      wd,
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Cohort: CohortConfig{
			Ideal:   v.GetInt("cohort.ideal"),
			MinSize: v.GetInt("cohort.minSize"),
			MaxSize: v.GetInt("cohort.maxSize"),
		},
	}, nil
}
