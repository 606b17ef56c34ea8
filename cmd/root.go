package cmd

import (
	"fmt"
	"os"

	"github.com/flatdoc/fdoc/cmd/doc"
	"github.com/flatdoc/fdoc/cmd/serve"
	"github.com/flatdoc/fdoc/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.2.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "fdoc",
		Short: "flat-file JSON document store",
		Long: fmt.Sprintf(`fdoc (v%s)

A flat-file JSON document store with per-Type format descriptors,
reachable over http, tcp or unix sockets.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fdoc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fdoc v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(doc.DocCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
