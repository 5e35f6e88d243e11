package store

import (
	"errors"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/sobok/pkg/timeutil"
)

const (
	defaultPath    = "~/.sobok.db"
	defaultMember  = "me"
	defaultTimeout = 10 * time.Second
	defaultListen  = "127.0.0.1:8080"
)

type Config interface {
	BasePath() string
}

// Settings is the resolved client/server configuration.
type Settings struct {
	Path       string        `json:"path"`
	Remote     string        `json:"remote,omitempty"`
	Member     string        `json:"member"`
	MemberName string        `json:"memberName,omitempty"`
	Timeout    time.Duration `json:"timeout"`
	Listen     string        `json:"listen"`
}

// BasePath is the diskv data directory.
func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .sobok.yaml from SOBOK_CONFIG_PATH or the working
// directory, then SOBOK_* environment variables.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("member", defaultMember)
	v.SetDefault("timeout", defaultTimeout.String())
	v.SetDefault("listen", defaultListen)
	v.SetConfigName(".sobok") // .yaml is implicit
	v.SetEnvPrefix("SOBOK")
	v.AutomaticEnv()

	if override := os.Getenv("SOBOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	timeout, err := timeutil.ParseTimeout(v.GetString("timeout"), defaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Settings{
		Path:       path,
		Remote:     v.GetString("remote"),
		Member:     v.GetString("member"),
		MemberName: v.GetString("member_name"),
		Timeout:    timeout,
		Listen:     v.GetString("listen"),
	}, nil
}
