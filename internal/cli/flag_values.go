package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
	choiceFlagTypeName                = "string"
	choiceListFlagTypeName            = "stringArray"
	choiceInvalidValueErrorFormat     = "invalid value %q for --%s; accepted values: %s"
	choiceValuesSeparator             = ", "
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue accepts the common spellings of true and false, so that
// "--strict-rel no" and "--strict-rel=off" both work.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%s %q for flag %q", booleanFlagInvalidValueErrorLabel, input, value.flagKey)
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return booleanFlagTrueLiteral
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagValue := &booleanFlagValue{
		target:  target,
		flagKey: name,
	}
	flagSet.Var(flagValue, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--flag value" into "--flag=value"
// for boolean flags when value is a boolean literal.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(currentArgument, "--")
			nextArgument := arguments[index+1]
			if _, exists := booleanFlags[flagName]; exists && !strings.HasPrefix(nextArgument, "-") {
				if _, valid := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; valid {
					normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, nextArgument))
					index++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	if command == nil || target == nil {
		return
	}
	visit := func(flagSet *pflag.FlagSet) {
		if flagSet == nil {
			return
		}
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag == nil || flag.Value == nil {
				return
			}
			if flag.Value.Type() == booleanFlagTypeName {
				target[flag.Name] = struct{}{}
			}
		})
	}
	visit(command.PersistentFlags())
	visit(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}

// choiceFlagValue holds a single value restricted to a fixed set of names.
type choiceFlagValue struct {
	target  *string
	allowed []string
	flagKey string
}

func (value *choiceFlagValue) Set(input string) error {
	normalized, validationError := validateChoice(value.flagKey, input, value.allowed)
	if validationError != nil {
		return validationError
	}
	*value.target = normalized
	return nil
}

func (value *choiceFlagValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

func (value *choiceFlagValue) Type() string {
	return choiceFlagTypeName
}

// choiceListFlagValue collects repeated values restricted to a fixed set of
// names. The first explicit value replaces the default.
type choiceListFlagValue struct {
	target  *[]string
	allowed []string
	flagKey string
	changed bool
}

func (value *choiceListFlagValue) Set(input string) error {
	normalized, validationError := validateChoice(value.flagKey, input, value.allowed)
	if validationError != nil {
		return validationError
	}
	if !value.changed {
		*value.target = nil
		value.changed = true
	}
	*value.target = append(*value.target, normalized)
	return nil
}

func (value *choiceListFlagValue) String() string {
	if value == nil || value.target == nil {
		return "[]"
	}
	return "[" + strings.Join(*value.target, ",") + "]"
}

func (value *choiceListFlagValue) Type() string {
	return choiceListFlagTypeName
}

func registerChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, shorthand string, defaultValue string, allowed []string, usage string) {
	*target = defaultValue
	flagSet.VarP(&choiceFlagValue{target: target, allowed: allowed, flagKey: name}, name, shorthand, usage+" ("+strings.Join(allowed, "|")+")")
}

func registerChoiceListFlag(flagSet *pflag.FlagSet, target *[]string, name string, shorthand string, allowed []string, usage string) {
	flagSet.VarP(&choiceListFlagValue{target: target, allowed: allowed, flagKey: name}, name, shorthand, usage+" ("+strings.Join(allowed, "|")+")")
}

func validateChoice(flagKey string, input string, allowed []string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, candidate := range allowed {
		if candidate == normalized {
			return normalized, nil
		}
	}
	return "", fmt.Errorf(choiceInvalidValueErrorFormat, input, flagKey, strings.Join(allowed, choiceValuesSeparator))
}

// choiceNames converts typed enumeration values into their flag spellings.
func choiceNames[T ~string](values []T) []string {
	names := make([]string, len(values))
	for index, value := range values {
		names[index] = string(value)
	}
	return names
}
