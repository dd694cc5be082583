package repo

const (
	AppName = "UnbondingLedger"

	// CfgFileName is the default config name
	CfgFileName = "config.toml"

	// defaultRepoRoot is the path to the default config dir location.
	defaultRepoRoot = "~/.unbonding-ledger"

	// rootPathEnvVar is the environment variable used to change the path root.
	rootPathEnvVar = "UNBONDING_LEDGER_PATH"

	envPrefix = "UNBONDING_LEDGER"

	pidFileName = "running.pid"

	LogsDirName = "logs"

	StorageDirName = "storage"
)

const (
	KVStorageTypeLeveldb = "leveldb"
	KVStorageTypeMemory  = "memory"
	KVStorageCacheSize   = 16
	KVStorageSync        = true

	// DefaultUnbondPeriod is the number of epochs an unlocked amount waits before it can be claimed.
	DefaultUnbondPeriod = 10

	DefaultAsset = "AXC"
)

// DefaultAccountBalance is the genesis balance of every default account, 10 million AXC in mol.
var DefaultAccountBalance = "10000000000000000000000000"

var DefaultAccounts = []string{
	"0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013",
	"0x79a1215469FaB6f9c63c1816b45183AD3624bE34",
	"0x97c8B516D19edBf575D72a172Af7F418BE498C37",
	"0xc0Ff2e0b3189132D815b8eb325bE17285AC898f8",
}
