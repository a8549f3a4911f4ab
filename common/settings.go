package common

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort     = 5000
	DefaultProvider = "hf-inference"
	DefaultModel    = "Qwen/Qwen2.5-Coder-32B-Instruct"
)

// Environment variables read on top of the settings file.
const (
	EnvPort         = "PORT"
	EnvProvider     = "LLM_PROVIDER"
	EnvModel        = "LLM_MODEL"
	EnvBaseURL      = "LLM_BASE_URL"
	EnvHFToken      = "HF_TOKEN"
	EnvAPIKey       = "LLM_API_KEY"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

var defaultFileNames = []string{"code-assist.yml", "code-assist.yaml"}

type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Retry struct {
	Max     int           `yaml:"max"`
	WaitMin time.Duration `yaml:"wait_min"`
	WaitMax time.Duration `yaml:"wait_max"`
}

type Gateway struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	BaseURL    string        `yaml:"base_url"`
	APITimeout time.Duration `yaml:"api_timeout"`
	Retry      Retry         `yaml:"retry"`

	// APIKey is only ever read from the environment.
	APIKey string `yaml:"-"`
}

type Tracing struct {
	Endpoint    string  `yaml:"endpoint"`
	SampleRate  float64 `yaml:"sample_rate"`
	Environment string  `yaml:"environment"`
}

type Settings struct {
	Server  Server  `yaml:"server"`
	Gateway Gateway `yaml:"gateway"`
	Tracing Tracing `yaml:"tracing"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Server: Server{
			Port:            DefaultPort,
			ShutdownTimeout: 10 * time.Second,
		},
		Gateway: Gateway{
			Provider:   DefaultProvider,
			Model:      DefaultModel,
			APITimeout: 120 * time.Second,
			Retry: Retry{
				Max:     0,
				WaitMin: 1 * time.Second,
				WaitMax: 5 * time.Second,
			},
		},
		Tracing: Tracing{
			SampleRate:  1.0,
			Environment: "development",
		},
	}
}

// LoadSettings builds the settings from defaults, the YAML file and the environment, in that order.
// An empty path falls back to code-assist.yml in the working directory when it exists.
// A .env file in the working directory is loaded into the environment first.
func LoadSettings(path string) (Settings, error) {
	settings := WithDefaultSettings()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Failed to load .env file: %v", err)
	}

	explicit := path != ""
	if !explicit {
		for _, name := range defaultFileNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil && explicit:
			return settings, fmt.Errorf("read settings file %s: %w", path, err)
		case err != nil:
			logger.Warnf("Failed to read settings file %s: %v", path, err)
		default:
			if err := yaml.Unmarshal(data, &settings); err != nil {
				logger.Warnf("Failed to parse YAML file %s: %v", path, err)
				settings = WithDefaultSettings()
			} else {
				logger.Infof("Using settings from YAML file: %s", path)
			}
		}
	} else {
		logger.Debug("No settings file found, using defaults")
	}

	if err := settings.applyEnv(); err != nil {
		return settings, err
	}
	return settings, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		s.Server.Port = port
	}
	if v := os.Getenv(EnvProvider); v != "" {
		s.Gateway.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		s.Gateway.Model = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		s.Gateway.BaseURL = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		s.Tracing.Endpoint = v
	}

	s.Gateway.APIKey = os.Getenv(EnvHFToken)
	if s.Gateway.APIKey == "" {
		s.Gateway.APIKey = os.Getenv(EnvAPIKey)
	}
	return nil
}

// Validate reports settings the service cannot start with.
func (s Settings) Validate() error {
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", s.Server.Port)
	}
	if s.Gateway.Provider == "" {
		return errors.New("gateway provider is not set")
	}
	if s.Gateway.Model == "" {
		return errors.New("gateway model is not set")
	}
	if s.Gateway.APIKey == "" {
		return fmt.Errorf("%s or %s environment variable is not set", EnvHFToken, EnvAPIKey)
	}
	if s.Gateway.Retry.Max < 0 {
		return fmt.Errorf("invalid retry max: %d", s.Gateway.Retry.Max)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
