package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethcore-go/ethcore/internal/wallet"
	"github.com/ethcore-go/ethcore/pkg/address"
	"github.com/ethcore-go/ethcore/pkg/hdwallet"
)

var (
	addressMnemonic   string
	addressPassphrase string
	addressIndex      uint32
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Derive an Ethereum address from a BIP-39 mnemonic",
	Long: `Derives the Ethereum address at m/44'/60'/0'/0/{index} from a
BIP-39 mnemonic, via pkg/hdwallet's BIP-32/BIP-44 walk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addressMnemonic == "" {
			return fmt.Errorf("--mnemonic is required")
		}
		seed := hdwallet.MnemonicToSeed(addressMnemonic, addressPassphrase)
		gen := wallet.NewETHGenerator()
		derived, err := gen.GenerateFromSeed(seed[:], addressIndex)
		if err != nil {
			return fmt.Errorf("derive address: %w", err)
		}

		if jsonOut {
			return printJSON(struct {
				Address        string `json:"address"`
				DerivationPath string `json:"derivation_path"`
				PublicKey      string `json:"public_key"`
			}{
				Address:        address.ToChecksum(derived.Address),
				DerivationPath: derived.DerivationPath,
				PublicKey:      derived.PublicKeyHex,
			})
		}
		fmt.Printf("address:   %s\n", address.ToChecksum(derived.Address))
		fmt.Printf("path:      %s\n", derived.DerivationPath)
		fmt.Printf("publicKey: %s\n", derived.PublicKeyHex)
		return nil
	},
}

func init() {
	addressCmd.Flags().StringVar(&addressMnemonic, "mnemonic", "", "BIP-39 mnemonic phrase")
	addressCmd.Flags().StringVar(&addressPassphrase, "passphrase", "", "optional BIP-39 passphrase")
	addressCmd.Flags().Uint32Var(&addressIndex, "index", 0, "BIP-44 address index (m/44'/60'/0'/0/{index})")
	rootCmd.AddCommand(addressCmd)
}
