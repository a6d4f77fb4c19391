// Package config reads the optional config.yaml overlay for the database
// connection.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"port"`
	DBName     string `yaml:"db_name"`
	DisableTLS *bool  `yaml:"disable_tls"`
}

// NewConfig reads path. A missing file yields an empty Config and no error.
func NewConfig(path string) (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return &c, nil
}

// Apply overwrites the fields of dst that are set in c.
func (c Config) Apply(user, password, host, port, name *string, disableTLS *bool) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(user, c.DBUsername)
	set(password, c.DBPassword)
	set(host, c.DBHost)
	set(port, c.DBPort)
	set(name, c.DBName)
	if c.DisableTLS != nil {
		*disableTLS = *c.DisableTLS
	}
}
