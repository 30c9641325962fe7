// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"github.com/caarlos0/env/v11"

	"grimm.is/vardoc/internal/errors"
)

// Env holds settings read from the environment. Command-line flags override them.
type Env struct {
	ConfigFile string `env:"VARDOC_CONFIG"`
	LogLevel   string `env:"VARDOC_LOG_LEVEL" envDefault:"info"`
	LogJSON    bool   `env:"VARDOC_LOG_JSON"`
	Dev        bool   `env:"VARDOC_DEV"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Wrap(err, errors.KindValidation, "parse env")
	}
	return e, nil
}
