package store

import (
	"log"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/logging"
)

// Config is the host configuration shared by the store and the views.
type Config interface {
	BasePath() string
	WeekStart() time.Weekday
	LogLevel() string
}

// LoadConfig reads .calgrid.yaml from $CALGRID_CONFIG_PATH or the working
// directory, with CALGRID_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.calgrid")
	viper.SetDefault("week_start", "sunday")
	viper.SetDefault("log_level", logging.DefaultLevel)
	viper.SetConfigName(".calgrid") // .yaml is implicit
	viper.SetEnvPrefix("CALGRID")
	viper.AutomaticEnv()

	if override := os.Getenv("CALGRID_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	return NewConfig(viper.GetString("path"), viper.GetString("week_start"), viper.GetString("log_level")), nil
}

// NewConfig builds a Config from raw values. An unknown week start falls back
// to Sunday.
func NewConfig(path, weekStart, logLevel string) Config {
	ws, ok := calendar.ParseWeekday(weekStart)
	if !ok {
		ws = time.Sunday
	}
	return &fileConfig{Path: path, Week: ws, Level: logLevel}
}

type fileConfig struct {
	Path  string       `json:"path"`
	Week  time.Weekday `json:"weekStart"`
	Level string       `json:"logLevel"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) WeekStart() time.Weekday {
	return f.Week
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

// ConfigFileUsed reports the config file viper loaded, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

func expandPath(p string) (string, error) {
	return homedir.Expand(p)
}
