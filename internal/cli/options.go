package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/temirov/listall/internal/config"
	"github.com/temirov/listall/internal/types"
	"github.com/temirov/listall/internal/utils"
)

const (
	missingDirectoryMessage     = "at least one directory is required; pass paths as arguments or with --dir"
	negativeValueErrorFormat    = "--%s must not be negative, got %d"
	configurationValueFormat    = "configuration value for %s: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
	errorNoValidPaths           = "no valid paths"
	configurationFlagNamePrefix = "listing."
)

// unixLikeOperatingSystems decorate paths with forward slashes by default.
var unixLikeOperatingSystems = map[string]struct{}{
	"darwin":    {},
	"linux":     {},
	"freebsd":   {},
	"openbsd":   {},
	"netbsd":    {},
	"dragonfly": {},
	"solaris":   {},
	"illumos":   {},
	"aix":       {},
}

// listingFlags holds raw flag values before they are merged with configuration.
type listingFlags struct {
	directories         []string
	exclusionPatterns   []string
	pathStyle           string
	format              string
	collect             string
	sortMode            string
	outputs             []string
	decorators          []string
	fileName            string
	collectLimit        int
	collectLimitMinimum int
	strictRelative      bool
	baseLabel           string
	indent              int
	compactBraces       bool
	maxDepth            int
	pruneThreshold      int
	useIgnoreFile       bool
	tokensEnabled       bool
	tokenModel          string
	configPath          string
	verbose             bool
	showVersion         bool
}

// invocation is the fully resolved request of one listall run.
type invocation struct {
	startDirectories []string
	options          types.Options
	targets          []types.OutputTarget
	fileName         string
	tokensEnabled    bool
	tokenModel       string
}

// resolveInvocation merges flags, configuration and defaults. Flags that were
// set explicitly win over configuration values, which win over defaults.
func (flags *listingFlags) resolveInvocation(command *cobra.Command, arguments []string, configuration config.ListingConfiguration, operatingSystem string) (invocation, error) {
	changed := command.Flags().Changed
	options := types.DefaultOptions()

	var parseError error
	if options.PathStyle, parseError = parseChoice(pathStyleFlagName, pickString(changed(pathStyleFlagName), flags.pathStyle, configuration.PathStyle, string(options.PathStyle)), types.PathStyles); parseError != nil {
		return invocation{}, parseError
	}
	if options.Format, parseError = parseChoice(formatFlagName, pickString(changed(formatFlagName), flags.format, configuration.Format, string(options.Format)), types.OutputFormats); parseError != nil {
		return invocation{}, parseError
	}
	if options.Collect, parseError = parseChoice(collectFlagName, pickString(changed(collectFlagName), flags.collect, configuration.Collect, string(options.Collect)), types.CollectStrategies); parseError != nil {
		return invocation{}, parseError
	}
	if options.Sort, parseError = parseChoice(sortFlagName, pickString(changed(sortFlagName), flags.sortMode, configuration.Sort, string(options.Sort)), types.SortModes); parseError != nil {
		return invocation{}, parseError
	}

	decorators, parseError := parseChoices(decoratorFlagName, pickStrings(changed(decoratorFlagName), flags.decorators, configuration.Decorators), types.Decorations)
	if parseError != nil {
		return invocation{}, parseError
	}
	options.Decorations = resolveDecorations(decorators, operatingSystem)

	targets, parseError := parseChoices(outputFlagName, pickStrings(changed(outputFlagName), flags.outputs, configuration.Outputs), types.OutputTargets)
	if parseError != nil {
		return invocation{}, parseError
	}

	options.ExclusionPatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Exclude...), flags.exclusionPatterns...))
	options.UseIgnoreFile = pickBool(changed(useIgnoreFlagName), flags.useIgnoreFile, configuration.UseIgnoreFile, false)
	options.StrictCrossRoot = pickBool(changed(strictRelativeFlagName), flags.strictRelative, configuration.StrictRelative, false)
	options.CompactBraces = pickBool(changed(compactBracesFlagName), flags.compactBraces, configuration.CompactBraces, false)
	options.BaseLabel = pickString(changed(baseLabelFlagName), flags.baseLabel, configuration.BaseLabel, "")

	optionalIntegers := []struct {
		flagName    string
		flagValue   int
		configValue *int
		destination **int
	}{
		{collectLimitFlagName, flags.collectLimit, configuration.CollectLimit, &options.CollectLimit},
		{collectLimitMinimumFlagName, flags.collectLimitMinimum, configuration.CollectLimitMinimum, &options.CollectLimitMinimum},
		{maxDepthFlagName, flags.maxDepth, configuration.MaxDepth, &options.MaxDepth},
		{pruneLargeDirectoriesFlagName, flags.pruneThreshold, configuration.PruneLargeDirectories, &options.PruneThreshold},
	}
	for _, optionalInteger := range optionalIntegers {
		value, pickError := pickOptionalInt(optionalInteger.flagName, changed(optionalInteger.flagName), optionalInteger.flagValue, optionalInteger.configValue)
		if pickError != nil {
			return invocation{}, pickError
		}
		*optionalInteger.destination = value
	}
	indent, pickError := pickOptionalInt(indentFlagName, changed(indentFlagName), flags.indent, configuration.Indent)
	if pickError != nil {
		return invocation{}, pickError
	}
	if indent != nil {
		options.IndentWidth = *indent
	}

	startDirectories, pathError := resolveStartDirectories(append(append([]string{}, arguments...), flags.directories...))
	if pathError != nil {
		return invocation{}, pathError
	}

	return invocation{
		startDirectories: startDirectories,
		options:          options,
		targets:          targets,
		fileName:         pickString(changed(fileNameFlagName), flags.fileName, configuration.Filename, ""),
		tokensEnabled:    pickBool(changed(tokensFlagName), flags.tokensEnabled, configuration.Tokens.Enabled, false),
		tokenModel:       pickString(changed(modelFlagName), flags.tokenModel, configuration.Tokens.Model, flags.tokenModel),
	}, nil
}

// resolveDecorations applies the host default when no decorator is given.
// When both separator styles are requested the host default one is dropped.
func resolveDecorations(decorators []types.Decoration, operatingSystem string) types.DecorationSet {
	hostDefault := types.DecorationWindows
	if _, unixLike := unixLikeOperatingSystems[operatingSystem]; unixLike {
		hostDefault = types.DecorationUnix
	}
	if len(decorators) == 0 {
		return types.NewDecorationSet(hostDefault)
	}
	decorations := types.NewDecorationSet(decorators...)
	if decorations.Has(types.DecorationUnix) && decorations.Has(types.DecorationWindows) {
		delete(decorations, hostDefault)
	}
	return decorations
}

// resolveStartDirectories converts input paths to absolute form, drops
// duplicates and rejects anything that is not an existing directory.
func resolveStartDirectories(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, errors.New(missingDirectoryMessage)
	}
	validatedPaths, validationError := resolveAndValidatePaths(inputs)
	if validationError != nil {
		return nil, validationError
	}
	startDirectories := make([]string, 0, len(validatedPaths))
	for _, validatedPath := range validatedPaths {
		if !validatedPath.IsDir {
			return nil, fmt.Errorf(errorNotDirectoryFormat, validatedPath.AbsolutePath)
		}
		startDirectories = append(startDirectories, validatedPath.AbsolutePath)
	}
	return startDirectories, nil
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	if len(result) == 0 {
		return nil, errors.New(errorNoValidPaths)
	}
	return result, nil
}

func parseChoice[T ~string](name string, value string, allowed []T) (T, error) {
	normalized, validationError := validateChoice(name, value, choiceNames(allowed))
	if validationError != nil {
		var zero T
		return zero, validationError
	}
	return T(normalized), nil
}

func parseChoices[T ~string](name string, values []string, allowed []T) ([]T, error) {
	var parsed []T
	for _, value := range values {
		choice, parseError := parseChoice(name, value, allowed)
		if parseError != nil {
			return nil, parseError
		}
		parsed = append(parsed, choice)
	}
	return parsed, nil
}

func pickString(flagChanged bool, flagValue string, configValue string, defaultValue string) string {
	if flagChanged {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}

func pickStrings(flagChanged bool, flagValues []string, configValues []string) []string {
	if flagChanged {
		return flagValues
	}
	return configValues
}

func pickBool(flagChanged bool, flagValue bool, configValue *bool, defaultValue bool) bool {
	if flagChanged {
		return flagValue
	}
	if configValue != nil {
		return *configValue
	}
	return defaultValue
}

func pickOptionalInt(name string, flagChanged bool, flagValue int, configValue *int) (*int, error) {
	var picked *int
	if flagChanged {
		value := flagValue
		picked = &value
	} else if configValue != nil {
		value := *configValue
		picked = &value
	}
	if picked != nil && *picked < 0 {
		if flagChanged {
			return nil, fmt.Errorf(negativeValueErrorFormat, name, *picked)
		}
		return nil, fmt.Errorf(configurationValueFormat, configurationFlagNamePrefix+name, fmt.Errorf(negativeValueErrorFormat, name, *picked))
	}
	return picked, nil
}

func hostOperatingSystem() string {
	return runtime.GOOS
}
