package cli

import (
	"log/slog"
	"maps"

	"github.com/caarlos0/env/v11"

	"github.com/ardnew/roll/cli/cmd"
	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/pkg"
	"github.com/ardnew/roll/telemetry"
)

// environment holds the settings read from ROLL_* environment variables.
type environment struct {
	Vars      map[string]string `env:"VARS" envKeyValSeparator:"=" envSeparator:";"`
	Telemetry telemetry.Config
	Seed      int64 `env:"SEED"`
}

// parseEnv decodes the environment using the [pkg.EnvPrefix] prefix.
func parseEnv() (environment, error) {
	return parseEnvFrom(nil)
}

// parseEnvFrom is parseEnv reading from vars instead of the process
// environment when vars is not nil.
func parseEnvFrom(vars map[string]string) (environment, error) {
	var e environment

	opts := env.Options{Prefix: pkg.EnvPrefix(), Environment: vars}

	if err := env.ParseWithOptions(&e, opts); err != nil {
		return e, ErrEnv.Wrap(err)
	}

	return e, nil
}

// session merges the environment with command-line values. A non-zero seed
// flag replaces ROLL_SEED and --var definitions replace ROLL_VARS entries of
// the same name.
func (e environment) session(seed int64, defs []string) (cmd.Session, error) {
	vars, err := lang.EvalVars(e.Vars)
	if err != nil {
		return cmd.Session{}, ErrEnv.
			With(slog.String("variable", pkg.EnvPrefix()+"VARS")).
			Wrap(err)
	}

	flagVars, err := lang.ParseVars(defs)
	if err != nil {
		return cmd.Session{}, err
	}

	maps.Copy(vars, flagVars)

	if seed == 0 {
		seed = e.Seed
	}

	return cmd.Session{Seed: seed, Vars: vars}, nil
}
