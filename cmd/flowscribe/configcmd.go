package flowscribe

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flowscribe/internal/config"
)

func newConfigCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   configCommandUse,
		Short: configCommandShort,
	}
	command.AddCommand(newConfigShowCommand())
	return command
}

func newConfigShowCommand() *cobra.Command {
	var configPath string
	command := &cobra.Command{
		Use:   showCommandUse,
		Short: showCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, resolverError := config.NewDefaultResolver()
			if resolverError != nil {
				return resolverError
			}
			resolved, resolveError := resolver.Resolve(configPath)
			if resolveError != nil {
				return resolveError
			}
			rendered, marshalError := yaml.Marshal(resolved)
			if marshalError != nil {
				return marshalError
			}
			_, writeError := fmt.Fprint(cmd.OutOrStdout(), string(rendered))
			return writeError
		},
	}
	command.Flags().StringVar(&configPath, configFlagName, "", configFlagUsage)
	return command
}
