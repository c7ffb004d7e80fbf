// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/listall/internal/commands"
	"github.com/temirov/listall/internal/config"
	"github.com/temirov/listall/internal/output"
	"github.com/temirov/listall/internal/services/clipboard"
	"github.com/temirov/listall/internal/tokenizer"
	"github.com/temirov/listall/internal/types"
	"github.com/temirov/listall/internal/utils"
)

const (
	directoryFlagName             = "dir"
	exclusionFlagName             = "exclude"
	pathStyleFlagName             = "path-style"
	formatFlagName                = "format"
	collectFlagName               = "collect"
	sortFlagName                  = "sort"
	outputFlagName                = "output"
	decoratorFlagName             = "decorator"
	fileNameFlagName              = "filename"
	collectLimitFlagName          = "collect-limit"
	collectLimitMinimumFlagName   = "collect-limit-min"
	strictRelativeFlagName        = "strict-rel"
	baseLabelFlagName             = "base-label"
	indentFlagName                = "indent"
	compactBracesFlagName         = "compact-braces"
	maxDepthFlagName              = "max-depth"
	pruneLargeDirectoriesFlagName = "prune-large-dirs"
	useIgnoreFlagName             = "use-ignore"
	tokensFlagName                = "tokens"
	modelFlagName                 = "model"
	configFlagName                = "config"
	versionFlagName               = "version"
	verboseFlagName               = "verbose"
	globalFlagName                = "global"
	forceFlagName                 = "force"

	versionTemplate      = "listall version: %s\n"
	rootUse              = "listall [paths...]"
	rootShortDescription = "list files and directories for prompts and notes"
	rootLongDescription  = `listall walks one or more directories and prints the files it finds,
either one path per line (inline) or as an indented brace tree (summary).
Paths come from positional arguments and --dir. Run "listall --help path-style"
or "listall --help sort" for detailed explanations of those options.`
	rootUsageExample = `  # Relative listing of src, prefixed with "src/"
  listall src

  # Summary tree of directories only, copied to the clipboard
  listall -d . -m summary -c dirs-only -o clip

  # Skip temporary files and stop two levels below the start
  listall . -x '*.tmp' --max-depth 2`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./.listall.yaml, or to
~/.listall/config.yaml with --global. Existing files are kept unless --force is given.`

	directoryFlagDescription             = "directory to list (repeatable)"
	exclusionFlagDescription             = "exclude entries whose name matches the pattern (repeatable)"
	pathStyleFlagDescription             = "path style"
	formatFlagDescription                = "output format"
	collectFlagDescription               = "collection strategy"
	sortFlagDescription                  = "sort mode"
	outputFlagDescription                = "output destination (repeatable)"
	decoratorFlagDescription             = "path decorator (repeatable, default by operating system)"
	fileNameFlagDescription              = "output file name for --output file"
	collectLimitFlagDescription          = "truncate file lists longer than this (collect all only)"
	collectLimitMinimumFlagDescription   = "number of files kept from both ends of a truncated list"
	strictRelativeFlagDescription        = "fail when a path cannot be made relative to its start directory"
	baseLabelFlagDescription             = "label replacing the start directory name in rel-base paths"
	indentFlagDescription                = "indentation width of summary output"
	compactBracesFlagDescription         = "append closing braces to the last line instead of a line of their own"
	maxDepthFlagDescription              = "do not descend below this depth"
	pruneLargeDirectoriesFlagDescription = "list only the first and last file of directories with this many files"
	useIgnoreFlagDescription             = "read exclusion patterns from <start>/.ignore"
	tokensFlagDescription                = "log a token estimate of the rendered listing"
	modelFlagDescription                 = "tokenizer model to use for token counting"
	configFlagDescription                = "configuration file to use instead of ./.listall.yaml"
	versionFlagDescription               = "display application version"
	verboseFlagDescription               = "log debug messages"
	globalFlagDescription                = "write the global configuration file"
	forceFlagDescription                 = "overwrite an existing configuration file"

	configurationWrittenFormat   = "Configuration written to %s\n"
	workingDirectoryErrorFormat  = "unable to determine working directory: %w"
	loadConfigurationErrorFormat = "load configuration: %w"
	deliverOutputErrorFormat     = "deliver output: %w"
	tokenEstimateMessage         = "token estimate"
	tokenCountFailedMessage      = "failed to count tokens"
	tokenCountSkippedMessage     = "token count skipped for text that is not valid UTF-8"
)

// application carries the collaborators of one command line invocation.
type application struct {
	logger           *zap.Logger
	stdout           io.Writer
	clipboard        clipboard.Copier
	workingDirectory string
	operatingSystem  string
}

// Execute runs the listall application with the process arguments.
func Execute(ctx context.Context, logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	app := &application{
		logger:           logger,
		stdout:           os.Stdout,
		clipboard:        clipboard.NewService(),
		workingDirectory: workingDirectory,
		operatingSystem:  hostOperatingSystem(),
	}
	return app.run(ctx, os.Args[1:])
}

func (app *application) run(ctx context.Context, arguments []string) error {
	if app.logger == nil {
		app.logger = zap.NewNop()
	}
	if topicText, found := lookupExtendedHelp(arguments); found {
		_, printError := io.WriteString(app.stdout, topicText)
		return printError
	}
	rootCommand := app.createRootCommand()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func (app *application) createRootCommand() *cobra.Command {
	flags := &listingFlags{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !flags.verbose {
				return nil
			}
			verboseLogger, loggerError := utils.NewApplicationLogger(true)
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			app.logger = verboseLogger
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			return app.runListing(command, arguments, flags)
		},
	}
	rootCommand.SetOut(app.stdout)

	flagSet := rootCommand.Flags()
	flagSet.StringArrayVarP(&flags.directories, directoryFlagName, "d", nil, directoryFlagDescription)
	flagSet.StringArrayVarP(&flags.exclusionPatterns, exclusionFlagName, "x", nil, exclusionFlagDescription)
	registerChoiceFlag(flagSet, &flags.pathStyle, pathStyleFlagName, "p", string(types.PathStyleRelativeWithBase), choiceNames(types.PathStyles), pathStyleFlagDescription)
	registerChoiceFlag(flagSet, &flags.format, formatFlagName, "m", string(types.FormatInline), choiceNames(types.OutputFormats), formatFlagDescription)
	registerChoiceFlag(flagSet, &flags.collect, collectFlagName, "c", string(types.CollectAll), choiceNames(types.CollectStrategies), collectFlagDescription)
	registerChoiceFlag(flagSet, &flags.sortMode, sortFlagName, "s", string(types.SortInsensitiveName), choiceNames(types.SortModes), sortFlagDescription)
	registerChoiceListFlag(flagSet, &flags.outputs, outputFlagName, "o", choiceNames(types.OutputTargets), outputFlagDescription)
	registerChoiceListFlag(flagSet, &flags.decorators, decoratorFlagName, "D", choiceNames(types.Decorations), decoratorFlagDescription)
	flagSet.StringVarP(&flags.fileName, fileNameFlagName, "f", "", fileNameFlagDescription)
	flagSet.IntVar(&flags.collectLimit, collectLimitFlagName, 0, collectLimitFlagDescription)
	flagSet.IntVar(&flags.collectLimitMinimum, collectLimitMinimumFlagName, 0, collectLimitMinimumFlagDescription)
	registerBooleanFlag(flagSet, &flags.strictRelative, strictRelativeFlagName, false, strictRelativeFlagDescription)
	flagSet.StringVarP(&flags.baseLabel, baseLabelFlagName, "b", "", baseLabelFlagDescription)
	flagSet.IntVarP(&flags.indent, indentFlagName, "i", types.DefaultIndentWidth, indentFlagDescription)
	registerBooleanFlag(flagSet, &flags.compactBraces, compactBracesFlagName, false, compactBracesFlagDescription)
	flagSet.IntVar(&flags.maxDepth, maxDepthFlagName, 0, maxDepthFlagDescription)
	flagSet.IntVar(&flags.pruneThreshold, pruneLargeDirectoriesFlagName, 0, pruneLargeDirectoriesFlagDescription)
	registerBooleanFlag(flagSet, &flags.useIgnoreFile, useIgnoreFlagName, false, useIgnoreFlagDescription)
	registerBooleanFlag(flagSet, &flags.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&flags.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVarP(&flags.showVersion, versionFlagName, "v", false, versionFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&flags.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(app.createInitCommand())
	return rootCommand
}

func (app *application) runListing(command *cobra.Command, arguments []string, flags *listingFlags) error {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: app.workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if loadError != nil {
		return fmt.Errorf(loadConfigurationErrorFormat, loadError)
	}

	resolved, resolveError := flags.resolveInvocation(command, arguments, applicationConfiguration.Listing, app.operatingSystem)
	if resolveError != nil {
		return resolveError
	}

	rendered, runError := commands.Run(command.Context(), resolved.startDirectories, resolved.options, app.logger)
	if runError != nil {
		return runError
	}

	if resolved.tokensEnabled {
		app.logTokenEstimate(rendered, resolved.tokenModel)
	}

	deliveryError := output.Deliver(command.Context(), rendered, output.Delivery{
		Targets:   resolved.targets,
		FileName:  resolved.fileName,
		Stdout:    command.OutOrStdout(),
		Clipboard: app.clipboard,
	})
	if deliveryError != nil {
		return fmt.Errorf(deliverOutputErrorFormat, deliveryError)
	}
	return nil
}

// logTokenEstimate logs the token count of rendered. Failures only warn.
func (app *application) logTokenEstimate(rendered string, model string) {
	counter, counterName, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		app.logger.Warn(tokenCountFailedMessage, zap.Error(counterError))
		return
	}
	result, countError := tokenizer.CountText(counter, rendered)
	if countError != nil {
		app.logger.Warn(tokenCountFailedMessage, zap.String("model", counterName), zap.Error(countError))
		return
	}
	if !result.Counted {
		app.logger.Warn(tokenCountSkippedMessage, zap.Int("characters", result.Characters))
		return
	}
	app.logger.Info(tokenEstimateMessage,
		zap.String("model", counterName),
		zap.Int("tokens", result.Tokens),
		zap.Int("characters", result.Characters),
	)
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, destinationPath)
			return printError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
