package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/listall/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the defaults read from configuration files.
type ApplicationConfiguration struct {
	Listing ListingConfiguration `mapstructure:"listing"`
}

// ListingConfiguration mirrors the listing flags. Unset values are empty
// strings, empty slices, or nil pointers.
type ListingConfiguration struct {
	PathStyle             string             `mapstructure:"path_style"`
	Format                string             `mapstructure:"format"`
	Collect               string             `mapstructure:"collect"`
	Sort                  string             `mapstructure:"sort"`
	Decorators            []string           `mapstructure:"decorators"`
	Outputs               []string           `mapstructure:"outputs"`
	Filename              string             `mapstructure:"filename"`
	Exclude               []string           `mapstructure:"exclude"`
	UseIgnoreFile         *bool              `mapstructure:"use_ignore"`
	CollectLimit          *int               `mapstructure:"collect_limit"`
	CollectLimitMinimum   *int               `mapstructure:"collect_limit_min"`
	StrictRelative        *bool              `mapstructure:"strict_rel"`
	BaseLabel             string             `mapstructure:"base_label"`
	Indent                *int               `mapstructure:"indent"`
	CompactBraces         *bool              `mapstructure:"compact_braces"`
	MaxDepth              *int               `mapstructure:"max_depth"`
	PruneLargeDirectories *int               `mapstructure:"prune_large_dirs"`
	Tokens                TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// Local values override global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Listing.Exclude = utils.DeduplicatePatterns(merged.Listing.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Listing = result.Listing.merge(override.Listing)
	return result
}

func (config ListingConfiguration) merge(override ListingConfiguration) ListingConfiguration {
	result := config
	result.PathStyle = overrideString(result.PathStyle, override.PathStyle)
	result.Format = overrideString(result.Format, override.Format)
	result.Collect = overrideString(result.Collect, override.Collect)
	result.Sort = overrideString(result.Sort, override.Sort)
	result.Filename = overrideString(result.Filename, override.Filename)
	result.BaseLabel = overrideString(result.BaseLabel, override.BaseLabel)
	if len(override.Decorators) > 0 {
		result.Decorators = append([]string{}, override.Decorators...)
	}
	if len(override.Outputs) > 0 {
		result.Outputs = append([]string{}, override.Outputs...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.CollectLimit != nil {
		result.CollectLimit = cloneInt(override.CollectLimit)
	}
	if override.CollectLimitMinimum != nil {
		result.CollectLimitMinimum = cloneInt(override.CollectLimitMinimum)
	}
	if override.StrictRelative != nil {
		result.StrictRelative = cloneBool(override.StrictRelative)
	}
	if override.Indent != nil {
		result.Indent = cloneInt(override.Indent)
	}
	if override.CompactBraces != nil {
		result.CompactBraces = cloneBool(override.CompactBraces)
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.PruneLargeDirectories != nil {
		result.PruneLargeDirectories = cloneInt(override.PruneLargeDirectories)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func overrideString(current, override string) string {
	if override != "" {
		return override
	}
	return current
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
