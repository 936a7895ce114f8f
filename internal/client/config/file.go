package config

import (
	"errors"

	"github.com/dmitrijs2005/docuport/internal/flagx"
	"github.com/spf13/viper"
)

// parseFile overlays Config with values from a config file and the
// environment (DOCUPORT_* variables).
//
// Lookup order for the file:
//  1. Explicit path from the -c / -config flags (an unreadable explicit
//     file is an error).
//  2. Otherwise docuport.yaml is searched in the working directory and
//     $HOME/.config/docuport; a missing file is not an error.
func parseFile(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix("DOCUPORT")
	v.AutomaticEnv()

	v.SetDefault("server_url", cfg.ServerBaseURL)
	v.SetDefault("request_timeout", cfg.RequestTimeout)
	v.SetDefault("store_path", cfg.StorePath)
	v.SetDefault("verbose", cfg.Verbose)

	explicit := flagx.ConfigFileFlags()
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("docuport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/docuport")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	cfg.ServerBaseURL = v.GetString("server_url")
	cfg.RequestTimeout = v.GetDuration("request_timeout")
	cfg.StorePath = v.GetString("store_path")
	cfg.Verbose = v.GetBool("verbose")
	return nil
}
