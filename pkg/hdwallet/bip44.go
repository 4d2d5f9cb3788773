package hdwallet

// BIP-44 fixes the first three path levels for Ethereum: purpose' / coin
// type' / account', leaving change and address_index free. Ethereum wallets
// universally use change=0 (spec.md §4.6).
const (
	purposeBIP44  = 44 + HardenedOffset
	coinTypeEther = 60 + HardenedOffset
	account0      = 0 + HardenedOffset
)

// EthereumPath returns the BIP-44 derivation path m/44'/60'/0'/0/index used
// by every Ethereum wallet that follows the standard, as a sequence of
// child indices to feed to Node.DerivePath.
func EthereumPath(index uint32) []uint32 {
	return []uint32{purposeBIP44, coinTypeEther, account0, 0, index}
}

// DeriveEthereumKey walks m/44'/60'/0'/0/index from the given master node.
func DeriveEthereumKey(master Node, index uint32) (Node, error) {
	return master.DerivePath(EthereumPath(index))
}
