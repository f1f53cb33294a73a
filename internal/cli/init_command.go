package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/mdlisting/internal/config"
	"github.com/temirov/mdlisting/internal/utils"
)

const (
	initUse                   = "init"
	initShortDescription      = "write a default configuration file"
	initLongDescription       = "Write the default mdlisting configuration to ./" + utils.ConfigFileName + ", or to the global configuration directory with --global."
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write the configuration to the global configuration directory"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initWrittenMessageFormat  = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
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
				WorkingDirectory: dependencies.WorkingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), initWrittenMessageFormat, destinationPath)
			return printError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, "", false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, forceFlagShorthand, false, initForceFlagDescription)
	return initCommand
}
