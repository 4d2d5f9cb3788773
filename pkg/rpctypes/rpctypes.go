// Package rpctypes holds the passive value types a Provider marshals
// to/from JSON-RPC: logs, receipts, and block headers (spec.md §3 "Event
// Log / Receipt / Block"). These carry no invariants beyond field
// presence — validation and decoding live in pkg/abi and pkg/hexutil,
// which a Provider implementation composes with these types.
//
// Field tags follow the teacher's JSON-tagged value types in
// pkg/models/models.go, generalized from its ETH/BTC/TRX union fields to
// the single Ethereum-shaped RPC objects below.
package rpctypes

// BlockTag names one of the symbolic block references JSON-RPC accepts in
// place of a block number.
type BlockTag string

const (
	BlockLatest    BlockTag = "latest"
	BlockEarliest  BlockTag = "earliest"
	BlockPending   BlockTag = "pending"
	BlockSafe      BlockTag = "safe"
	BlockFinalized BlockTag = "finalized"
)

// Log is a decoded event log entry.
type Log struct {
	Address          [20]byte   `json:"address"`
	Topics           [][32]byte `json:"topics"`
	Data             []byte     `json:"data"`
	BlockNumber      uint64     `json:"blockNumber"`
	BlockHash        [32]byte   `json:"blockHash"`
	TransactionHash  [32]byte   `json:"transactionHash"`
	TransactionIndex uint64     `json:"transactionIndex"`
	LogIndex         uint64     `json:"logIndex"`
	Removed          bool       `json:"removed"`
}

// Receipt is a decoded transaction receipt.
type Receipt struct {
	TransactionHash   [32]byte `json:"transactionHash"`
	TransactionIndex  uint64   `json:"transactionIndex"`
	BlockHash         [32]byte `json:"blockHash"`
	BlockNumber       uint64   `json:"blockNumber"`
	From              [20]byte `json:"from"`
	To                *[20]byte `json:"to"`
	ContractAddress   *[20]byte `json:"contractAddress"`
	CumulativeGasUsed uint64   `json:"cumulativeGasUsed"`
	GasUsed           uint64   `json:"gasUsed"`
	EffectiveGasPrice uint64   `json:"effectiveGasPrice"`
	Status            bool     `json:"status"`
	Logs              []Log    `json:"logs"`
	Type              byte     `json:"type"`
}

// Block is a decoded block header plus its transaction hashes.
type Block struct {
	Number           uint64     `json:"number"`
	Hash             [32]byte   `json:"hash"`
	ParentHash       [32]byte   `json:"parentHash"`
	Timestamp        uint64     `json:"timestamp"`
	GasLimit         uint64     `json:"gasLimit"`
	GasUsed          uint64     `json:"gasUsed"`
	BaseFeePerGas    uint64     `json:"baseFeePerGas"`
	Miner            [20]byte   `json:"miner"`
	TransactionHashes [][32]byte `json:"transactions"`
}
