package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethcore-go/ethcore/internal/wallet"
	"github.com/ethcore-go/ethcore/pkg/address"
	"github.com/ethcore-go/ethcore/pkg/hdwallet"
	"github.com/ethcore-go/ethcore/pkg/hexutil"
	"github.com/ethcore-go/ethcore/pkg/txtypes"
	"github.com/ethcore-go/ethcore/pkg/u256"
)

var (
	signTxMnemonic   string
	signTxPassphrase string
	signTxIndex      uint32
	signTxType       string
	signTxChainID    uint64
	signTxNonce      uint64
	signTxTo         string
	signTxValue      string
	signTxData       string
	signTxGas        uint64
	signTxGasPrice   string
	signTxTip        string
	signTxFeeCap     string
	signTxBlobFeeCap string
	signTxBlobHashes []string
)

var signTxCmd = &cobra.Command{
	Use:   "sign-tx",
	Short: "Sign an Ethereum transaction",
	Long: `Assembles one of the four transaction envelopes (legacy, EIP-2930,
EIP-1559, EIP-4844), computes its signing hash, signs it with the key
derived from --mnemonic at --index, and prints the RLP-encoded signed
transaction plus its hash.

  --type legacy   requires --gas-price
  --type 2930     requires --gas-price
  --type 1559     requires --tip and --fee-cap
  --type 4844     requires --tip, --fee-cap, --blob-fee-cap, --blob-hash (repeatable), and a non-empty --to`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if signTxMnemonic == "" {
			return fmt.Errorf("--mnemonic is required")
		}

		to, err := parseOptionalAddress(signTxTo)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		value, err := parseU256Flag(signTxValue)
		if err != nil {
			return fmt.Errorf("--value: %w", err)
		}
		data, err := parseDataFlag(signTxData)
		if err != nil {
			return fmt.Errorf("--data: %w", err)
		}

		seed := hdwallet.MnemonicToSeed(signTxMnemonic, signTxPassphrase)
		w := wallet.NewWallet(seed[:], signTxChainID)

		var tx any
		switch strings.ToLower(signTxType) {
		case "legacy", "":
			gasPrice, err := parseU256Flag(signTxGasPrice)
			if err != nil {
				return fmt.Errorf("--gas-price: %w", err)
			}
			tx = &txtypes.LegacyTx{
				Nonce: signTxNonce, GasPrice: gasPrice, Gas: signTxGas,
				To: to, Value: value, Data: data,
			}
		case "2930", "eip2930", "access-list":
			gasPrice, err := parseU256Flag(signTxGasPrice)
			if err != nil {
				return fmt.Errorf("--gas-price: %w", err)
			}
			tx = &txtypes.AccessListTx{
				ChainID: signTxChainID, Nonce: signTxNonce, GasPrice: gasPrice,
				Gas: signTxGas, To: to, Value: value, Data: data,
			}
		case "1559", "eip1559", "dynamic-fee":
			tip, err := parseU256Flag(signTxTip)
			if err != nil {
				return fmt.Errorf("--tip: %w", err)
			}
			feeCap, err := parseU256Flag(signTxFeeCap)
			if err != nil {
				return fmt.Errorf("--fee-cap: %w", err)
			}
			tx = &txtypes.DynamicFeeTx{
				ChainID: signTxChainID, Nonce: signTxNonce, GasTipCap: tip,
				GasFeeCap: feeCap, Gas: signTxGas, To: to, Value: value, Data: data,
			}
		case "4844", "eip4844", "blob":
			if to == nil {
				return fmt.Errorf("--to is required for blob transactions")
			}
			tip, err := parseU256Flag(signTxTip)
			if err != nil {
				return fmt.Errorf("--tip: %w", err)
			}
			feeCap, err := parseU256Flag(signTxFeeCap)
			if err != nil {
				return fmt.Errorf("--fee-cap: %w", err)
			}
			blobFeeCap, err := parseU256Flag(signTxBlobFeeCap)
			if err != nil {
				return fmt.Errorf("--blob-fee-cap: %w", err)
			}
			hashes, err := parseBlobHashes(signTxBlobHashes)
			if err != nil {
				return fmt.Errorf("--blob-hash: %w", err)
			}
			tx = &txtypes.BlobTx{
				ChainID: signTxChainID, Nonce: signTxNonce, GasTipCap: tip,
				GasFeeCap: feeCap, Gas: signTxGas, To: *to, Value: value, Data: data,
				MaxFeePerBlobGas: blobFeeCap, BlobHashes: hashes,
			}
		default:
			return fmt.Errorf("unknown --type %q (want legacy, 2930, 1559, or 4844)", signTxType)
		}

		raw, hash, err := w.SignTransaction(context.Background(), tx, signTxIndex)
		if err != nil {
			return fmt.Errorf("sign transaction: %w", err)
		}

		if jsonOut {
			return printJSON(struct {
				Raw  string `json:"raw"`
				Hash string `json:"hash"`
			}{Raw: hexutil.Encode(raw), Hash: hexutil.Encode(hash[:])})
		}
		fmt.Printf("raw:  %s\n", hexutil.Encode(raw))
		fmt.Printf("hash: %s\n", hexutil.Encode(hash[:]))
		return nil
	},
}

func parseOptionalAddress(s string) (*[20]byte, error) {
	if s == "" {
		return nil, nil
	}
	addr, err := address.Parse(s)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func parseU256Flag(s string) (u256.U256, error) {
	if s == "" {
		return u256.Zero, nil
	}
	if hexutil.HasPrefix(s) {
		b, err := hexutil.Decode(s)
		if err != nil {
			return u256.U256{}, err
		}
		return u256.FromBytesBE(b)
	}
	return u256.ParseDecimal(s)
}

func parseDataFlag(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hexutil.Decode(s)
}

func parseBlobHashes(hashes []string) ([][32]byte, error) {
	out := make([][32]byte, len(hashes))
	for i, h := range hashes {
		b, err := hexutil.DecodeFixed(h, 32)
		if err != nil {
			return nil, err
		}
		copy(out[i][:], b)
	}
	return out, nil
}

func init() {
	signTxCmd.Flags().StringVar(&signTxMnemonic, "mnemonic", "", "BIP-39 mnemonic phrase")
	signTxCmd.Flags().StringVar(&signTxPassphrase, "passphrase", "", "optional BIP-39 passphrase")
	signTxCmd.Flags().Uint32Var(&signTxIndex, "index", 0, "BIP-44 address index (m/44'/60'/0'/0/{index}) to sign with")
	signTxCmd.Flags().StringVar(&signTxType, "type", "legacy", "transaction type: legacy, 2930, 1559, 4844")
	signTxCmd.Flags().Uint64Var(&signTxChainID, "chain-id", 1, "chain id (0 selects the pre-EIP-155 legacy form)")
	signTxCmd.Flags().Uint64Var(&signTxNonce, "nonce", 0, "account nonce")
	signTxCmd.Flags().StringVar(&signTxTo, "to", "", "recipient address (empty for contract creation)")
	signTxCmd.Flags().StringVar(&signTxValue, "value", "0", "value in wei, decimal or 0x-hex")
	signTxCmd.Flags().StringVar(&signTxData, "data", "", "calldata, 0x-hex")
	signTxCmd.Flags().Uint64Var(&signTxGas, "gas-limit", 21000, "gas limit")
	signTxCmd.Flags().StringVar(&signTxGasPrice, "gas-price", "0", "gas price in wei (legacy/2930)")
	signTxCmd.Flags().StringVar(&signTxTip, "tip", "0", "max priority fee per gas in wei (1559/4844)")
	signTxCmd.Flags().StringVar(&signTxFeeCap, "fee-cap", "0", "max fee per gas in wei (1559/4844)")
	signTxCmd.Flags().StringVar(&signTxBlobFeeCap, "blob-fee-cap", "0", "max fee per blob gas in wei (4844)")
	signTxCmd.Flags().StringSliceVar(&signTxBlobHashes, "blob-hash", nil, "blob versioned hash, 0x-hex, repeatable (4844)")
	rootCmd.AddCommand(signTxCmd)
}
