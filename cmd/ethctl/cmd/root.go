// Package cmd implements ethctl's command tree, grounded in
// popsigner's popctl/cmd/root.go command-wiring style (a persistent
// rootCmd, package-level flag vars bound in init, an Execute entry
// point) without popctl's remote-API client — ethctl calls straight
// into this module's pkg/* libraries.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var (
	// jsonOut makes commands print machine-readable JSON instead of
	// human-readable text.
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "ethctl",
	Short: "ethctl - a command-line wrapper over the ethcore library",
	Long: `ethctl is a small CLI over ethcore's Ethereum primitives: deriving HD
wallet addresses, signing transactions, and ABI-encoding contract calldata
without touching a live node, plus a "watch" command that does talk to one.

Examples:
  $ ethctl address --mnemonic "..." --index 0
  $ ethctl sign-tx --mnemonic "..." --chain-id 1 --nonce 0 --to 0x... --value 1000000000000000000
  $ ethctl abi-encode "transfer(address,uint256)" 0x... 1000
  $ ethctl watch --rpc http://localhost:8545 --address 0x...`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ethctl version %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.AddCommand(versionCmd)
}

// printJSON outputs data as formatted JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError prints an error message to stderr.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
