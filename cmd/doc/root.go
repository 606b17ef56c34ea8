package doc

import (
	"github.com/flatdoc/fdoc/cmd/util"
	"github.com/flatdoc/fdoc/rpc/client"
	"github.com/spf13/cobra"
)

var (
	docStore client.IRemoteDocStore

	// DocCommands represents the document command group
	DocCommands = &cobra.Command{
		Use:               "doc",
		Short:             "Perform document operations against a running fdoc server",
		PersistentPreRunE: setupDocClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common RPC flags to the doc command
	util.SetupRPCClientFlags(DocCommands)

	// Add subcommands
	DocCommands.AddCommand(createCmd)
	DocCommands.AddCommand(getCmd)
	DocCommands.AddCommand(updateCmd)
	DocCommands.AddCommand(deleteCmd)
}

// setupDocClient initializes the RPC document store client
func setupDocClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the document store client
	docStore, err = client.NewRPCDocStore(
		*config,
		t,
		s,
	)

	return err
}
