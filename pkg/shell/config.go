package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/RubixDev/Roost/pkg/prog"
)

// Config is the content of the configuration file.
type Config struct {
	// The prompt of the REPL.
	Prompt string `yaml:"prompt"`
	// Path of the history database. An empty string means the default path,
	// and "none" disables history.
	History string `yaml:"history"`
	// Path of the script evaluated when the REPL starts. An empty string
	// means the default path.
	RC string `yaml:"rc"`
	// Whether to print execution times.
	Time bool `yaml:"time"`
}

const (
	defaultPrompt = ">> "
	noHistory     = "none"
)

// Loads the configuration from the given path, or the default path if it is
// empty. A missing file at the default path is not an error.
func loadConfig(path string) (Config, error) {
	cfg := Config{Prompt: defaultPrompt}
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			logger.Println("no config directory:", err)
			return cfg, nil
		}
		path = filepath.Join(dir, "config.yaml")
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	logger.Printf("loaded config from %s: %+v", path, cfg)
	return cfg, nil
}

// Returns the path of the history database, or "" if history is disabled.
// The -db flag takes precedence over the config file.
func historyPath(f *prog.Flags, cfg Config) string {
	p := f.DB
	if p == "" {
		p = cfg.History
	}
	if p == noHistory {
		return ""
	}
	if p == "" {
		dir, err := stateDir()
		if err != nil {
			logger.Println("no state directory:", err)
			return ""
		}
		p = filepath.Join(dir, "history.db")
	}
	return p
}

// Returns the path of the rc file. The -rc flag takes precedence over the
// config file.
func rcPath(f *prog.Flags, cfg Config) string {
	if f.RC != "" {
		return f.RC
	}
	if cfg.RC != "" {
		return cfg.RC
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rc.roost")
}

func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func stateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// Returns the roost subdirectory of the directory named by the environment
// variable, falling back to a directory under the home directory.
func xdgDir(envName, fallback string) (string, error) {
	if dir := os.Getenv(envName); dir != "" {
		return filepath.Join(dir, "roost"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, "roost"), nil
}
