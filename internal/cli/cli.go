// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/mdlisting/internal/config"
	"github.com/temirov/mdlisting/internal/pipeline"
	"github.com/temirov/mdlisting/internal/services/clipboard"
	"github.com/temirov/mdlisting/internal/tokenizer"
	"github.com/temirov/mdlisting/internal/types"
	"github.com/temirov/mdlisting/internal/utils"
)

const (
	rootUse              = "mdlisting [patterns...]"
	rootShortDescription = "collect files into a single markdown listing"
	rootLongDescription  = `mdlisting finds files matching glob patterns under a directory and writes
one markdown document containing a title, a directory tree of the matched files,
and the full contents of every file in a fenced code block.
Patterns are given with --input; positional arguments are added as further patterns.`
	rootUsageExample = `  # List all TypeScript sources under src into output.md
  mdlisting -i "src/**/*.ts"

  # Write docs/listing.md for a project, skipping tests and the tree section
  mdlisting -d ./project -o docs/listing.md -i "**/*.go" -x "**/*_test.go" -l false

  # Overwrite an existing listing and copy it to the clipboard
  mdlisting -i "*.md" -f --copy`

	inputFlagName         = "input"
	inputFlagShorthand    = "i"
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	directoryFlagName     = "directory"
	directoryShorthand    = "d"
	forceFlagName         = "force"
	forceFlagShorthand    = "f"
	titleFlagName         = "title"
	titleFlagShorthand    = "t"
	configFlagName        = "config"
	configFlagShorthand   = "c"
	listingFlagName       = "listing"
	listingFlagShorthand  = "l"
	excludeFlagName       = "exclude"
	excludeFlagShorthand  = "x"
	silentFlagName        = "silent"
	silentFlagShorthand   = "s"
	verboseFlagName       = "verbose"
	verboseFlagShorthand  = "v"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	configFileFlagName    = "config-file"
	versionFlagName       = "version"
	versionTemplate       = "mdlisting version: %s\n"
	patternListSeparator  = ", "
	inputFlagDescription  = "globs of files to include (repeatable or comma separated)"
	outputFlagDescription = "the output markdown file, relative to the directory"
	directoryDescription  = "the target directory for input and output"
	forceFlagDescription  = "overwrite the output file if it already exists"
	titleFlagDescription  = "the title of the markdown file"
	configFlagDescription = "include the config in the generated markdown"
	listingDescription    = "include the file tree listing in the generated markdown"
	silentDescription     = "run in silent mode with minimal output"
	verboseDescription    = "run in verbose mode with detailed output"
	copyFlagDescription   = "copy the generated markdown to the system clipboard"
	tokensDescription     = "report the token count of the generated markdown"
	modelDescription      = "tokenizer model to use for token counting"
	configFileDescription = "read configuration from this file instead of " + utils.ConfigFileName
	versionDescription    = "display application version"

	targetDirectoryMessageFormat = "Target directory: %s"
	outputPathMessageFormat      = "Output file path: %s"
	inputGlobsMessageFormat      = "Input globs: %s"
	ignoreGlobsMessageFormat     = "Ignore globs: %s"
	outputExistsMessageFormat    = "Output file %s already exists."
	overwritingMessageFormat     = "Overwriting existing file: %s"
	useForceMessage              = "Use -f to overwrite the file."
	copiedMessage                = "Copied markdown to clipboard."
	runSummaryMessageFormat      = "Files listed: %d, document size: %s"
	inspectOutputErrorFormat     = "inspect output file %s: %w"
)

var (
	// ErrConflictingVerbosity reports that both --silent and --verbose were requested.
	ErrConflictingVerbosity = errors.New("cannot use both silent and verbose options")
	excludeFlagDefaultText  = strings.Join(types.DefaultExclusionPatterns(), patternListSeparator)
)

// Dependencies supplies the collaborators of the command tree.
type Dependencies struct {
	Logger           *zap.Logger
	Copier           clipboard.Copier
	WorkingDirectory string
	HomeDirectory    string
}

// Execute runs the mdlisting application with process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger, Copier: clipboard.NewService()})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// rootOptions stores the values of the root command flags.
type rootOptions struct {
	inputPatterns     []string
	exclusionPatterns []string
	outputFileName    string
	directory         string
	title             string
	force             bool
	includeConfig     bool
	includeListing    bool
	silent            bool
	verbose           bool
	copyToClipboard   bool
	tokensEnabled     bool
	tokenModel        string
	configFilePath    string
	showVersion       bool
}

// NewRootCommand builds the root Cobra command with its subcommands.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			if options.silent && options.verbose {
				_, _ = io.WriteString(command.ErrOrStderr(), command.UsageString())
				return ErrConflictingVerbosity
			}
			return runListing(command, dependencies, options, arguments)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringArrayVarP(&options.inputPatterns, inputFlagName, inputFlagShorthand, nil, inputFlagDescription)
	flagSet.StringVarP(&options.outputFileName, outputFlagName, outputFlagShorthand, types.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringVarP(&options.directory, directoryFlagName, directoryShorthand, types.DefaultBaseDirectory, directoryDescription)
	registerBooleanFlag(flagSet, &options.force, forceFlagName, forceFlagShorthand, false, forceFlagDescription)
	flagSet.StringVarP(&options.title, titleFlagName, titleFlagShorthand, types.DefaultTitle, titleFlagDescription)
	registerBooleanFlag(flagSet, &options.includeConfig, configFlagName, configFlagShorthand, true, configFlagDescription)
	registerBooleanFlag(flagSet, &options.includeListing, listingFlagName, listingFlagShorthand, true, listingDescription)
	flagSet.StringArrayVarP(&options.exclusionPatterns, excludeFlagName, excludeFlagShorthand, nil, "globs of files to ignore")
	if lookup := flagSet.Lookup(excludeFlagName); lookup != nil {
		lookup.DefValue = excludeFlagDefaultText
	}
	flagSet.BoolVarP(&options.silent, silentFlagName, silentFlagShorthand, false, silentDescription)
	flagSet.BoolVarP(&options.verbose, verboseFlagName, verboseFlagShorthand, false, verboseDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, "", false, tokensDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, types.DefaultTokenizerModel, modelDescription)
	flagSet.StringVar(&options.configFilePath, configFileFlagName, utils.EmptyString, configFileDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runListing resolves configuration, applies the overwrite policy and runs the pipeline.
func runListing(command *cobra.Command, dependencies Dependencies, options rootOptions, arguments []string) error {
	fileConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		ExplicitFilePath: options.configFilePath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if loadError != nil {
		return loadError
	}
	settings, resolveError := config.ResolveParameters(fileConfiguration.Merge(flagConfiguration(command, options, arguments)))
	if resolveError != nil {
		return resolveError
	}
	parameters := settings.Parameters
	if len(parameters.InclusionPatterns) == 0 {
		return pipeline.ErrNoInclusionPatterns
	}

	reporter := utils.NewConsoleReporter(dependencies.Logger, resolveVerbosity(options))

	if _, statError := os.Stat(parameters.OutputFilePath); statError == nil {
		reporter.Warn(fmt.Sprintf(outputExistsMessageFormat, parameters.OutputFilePath))
		if !settings.Force {
			reporter.Warn(useForceMessage)
			return nil
		}
		reporter.Warn(fmt.Sprintf(overwritingMessageFormat, parameters.OutputFilePath))
	} else if !os.IsNotExist(statError) {
		return fmt.Errorf(inspectOutputErrorFormat, parameters.OutputFilePath, statError)
	}

	reporter.Report(fmt.Sprintf(targetDirectoryMessageFormat, parameters.BaseDirectory), true)
	reporter.Report(fmt.Sprintf(outputPathMessageFormat, parameters.OutputFilePath), true)
	reporter.Report(fmt.Sprintf(inputGlobsMessageFormat, strings.Join(parameters.InclusionPatterns, patternListSeparator)), true)
	reporter.Report(fmt.Sprintf(ignoreGlobsMessageFormat, strings.Join(parameters.ExclusionPatterns, patternListSeparator)), true)

	result, runError := pipeline.Run(parameters, reporter)
	if runError != nil {
		return runError
	}
	reporter.Report(fmt.Sprintf(runSummaryMessageFormat, len(result.Files), utils.FormatFileSize(len(result.Document))), true)

	if settings.TokensEnabled {
		counter, _, counterError := tokenizer.NewCounter(settings.TokenModel)
		if counterError != nil {
			return counterError
		}
		summary, countError := tokenizer.CountDocument(counter, result.Document)
		if countError != nil {
			return countError
		}
		reporter.Report(summary.String(), false)
	}

	if settings.Copy {
		if copyError := dependencies.Copier.Copy(result.Document); copyError != nil {
			return copyError
		}
		reporter.Report(copiedMessage, false)
	}
	return nil
}

// flagConfiguration captures only the flags that were set on the command line so
// that they override configuration files without masking them with defaults.
func flagConfiguration(command *cobra.Command, options rootOptions, arguments []string) config.ApplicationConfiguration {
	flagSet := command.Flags()
	var overrides config.ApplicationConfiguration
	overrides.Input = append(utils.SplitPatternList(options.inputPatterns), arguments...)
	if flagSet.Changed(excludeFlagName) {
		overrides.Exclude = utils.SplitPatternList(options.exclusionPatterns)
	}
	if flagSet.Changed(outputFlagName) {
		overrides.Output = options.outputFileName
	}
	if flagSet.Changed(directoryFlagName) {
		overrides.Directory = options.directory
	}
	if flagSet.Changed(titleFlagName) {
		overrides.Title = options.title
	}
	if flagSet.Changed(forceFlagName) {
		overrides.Force = config.Bool(options.force)
	}
	if flagSet.Changed(configFlagName) {
		overrides.Config = config.Bool(options.includeConfig)
	}
	if flagSet.Changed(listingFlagName) {
		overrides.Listing = config.Bool(options.includeListing)
	}
	if flagSet.Changed(copyFlagName) {
		overrides.Copy = config.Bool(options.copyToClipboard)
	}
	if flagSet.Changed(tokensFlagName) {
		overrides.Tokens.Enabled = config.Bool(options.tokensEnabled)
	}
	if flagSet.Changed(modelFlagName) {
		overrides.Tokens.Model = options.tokenModel
	}
	return overrides
}

func resolveVerbosity(options rootOptions) utils.Verbosity {
	switch {
	case options.verbose:
		return utils.VerbosityVerbose
	case options.silent:
		return utils.VerbositySilent
	default:
		return utils.VerbosityNormal
	}
}
