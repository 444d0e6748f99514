package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
	catalogerrors "github.com/pbzzardari/PlayverseZone/pkg/errors"
)

// ConfigLoader loads and validates a catalog document from a JSON or YAML file.
// It performs file reading, schema checking, parsing, and business-rule validation.
type ConfigLoader struct {
	configPath string
	validator  *Validator
	logger     *slog.Logger
}

// NewConfigLoader creates a new ConfigLoader instance.
//
// Parameters:
//   - configPath: Path to catalog.json, catalog.yaml or catalog.yml
//   - logger: Structured logger for operational logging
func NewConfigLoader(configPath string, logger *slog.Logger) *ConfigLoader {
	return &ConfigLoader{
		configPath: configPath,
		validator:  NewValidator(),
		logger:     logger,
	}
}

// Path returns the file this loader reads.
func (l *ConfigLoader) Path() string {
	return l.configPath
}

// LoadConfig loads the catalog file and returns a validated Config.
// YAML documents are converted to JSON first, so both formats go through
// the same schema check and decoder.
//
// This is a "fail fast" operation: an invalid catalog prevents startup.
func (l *ConfigLoader) LoadConfig() (*Config, error) {
	// Step 1: Read file
	data, err := os.ReadFile(l.configPath)
	if os.IsNotExist(err) {
		return nil, catalogerrors.ErrConfigNotFound(l.configPath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Step 2: Normalize to JSON
	if isYAML(l.configPath) {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	} else if !json.Valid(data) {
		return nil, errors.New("failed to parse config JSON: invalid JSON document")
	}

	// Step 3: Schema check
	if err := checkSchema(data); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Step 4: Decode
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Step 5: Defaults
	applyDefaults(&config)

	// Step 6: Validate
	if err := l.validator.Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	l.logger.Info("Catalog loaded successfully",
		"games", len(config.Games),
		"playable", countPlayable(&config),
		"achievements", len(config.Achievements),
		"config_path", l.configPath,
	)

	return &config, nil
}

// applyDefaults fills optional fields so downstream code never sees nil slices.
func applyDefaults(config *Config) {
	if len(config.Categories) == 0 {
		config.Categories = DefaultCategories()
	}
	for _, game := range config.Games {
		if game != nil && game.Tags == nil {
			game.Tags = []string{}
		}
	}
}

func countPlayable(config *Config) int {
	count := 0
	for _, game := range config.Games {
		if game.IsPlayable() {
			count++
		}
	}
	return count
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// yamlToJSON decodes a YAML document generically and re-encodes it as JSON.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	normalized, err := jsonCompatible(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// jsonCompatible rewrites YAML-specific values (non-string map keys, timestamps)
// into shapes encoding/json accepts.
func jsonCompatible(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			converted, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported non-string key %v", k)
			}
			converted, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			converted, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case time.Time:
		return val.Format(domain.DateLayout), nil
	default:
		return val, nil
	}
}
