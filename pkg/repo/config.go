package repo

import (
	"encoding/json"
	"os"
	"path"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

type Duration time.Duration

func (d *Duration) MarshalText() (text []byte, err error) {
	return []byte(time.Duration(*d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	x, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(x)
	return nil
}

func StringToTimeDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Duration(5)) {
			return data, nil
		}

		d, err := time.ParseDuration(data.(string))
		if err != nil {
			return nil, err
		}
		return Duration(d), nil
	}
}

func (d *Duration) ToDuration() time.Duration {
	return time.Duration(*d)
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

type Config struct {
	Ulimit  uint64        `mapstructure:"ulimit" toml:"ulimit"`
	Port    Port          `mapstructure:"port" toml:"port"`
	JsonRPC JsonRPC       `mapstructure:"jsonrpc" toml:"jsonrpc"`
	Storage Storage       `mapstructure:"storage" toml:"storage"`
	Ledger  Ledger        `mapstructure:"ledger" toml:"ledger"`
	Epoch   Epoch         `mapstructure:"epoch" toml:"epoch"`
	Monitor Monitor       `mapstructure:"monitor" toml:"monitor"`
	Log     Log           `mapstructure:"log" toml:"log"`
	Genesis GenesisConfig `mapstructure:"genesis" toml:"genesis"`
}

type Port struct {
	JsonRpc int64 `mapstructure:"jsonrpc" toml:"jsonrpc"`
	Monitor int64 `mapstructure:"monitor" toml:"monitor"`
}

type JsonRPC struct {
	ReadTimeout     Duration `mapstructure:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `mapstructure:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout Duration `mapstructure:"shutdown_timeout" toml:"shutdown_timeout"`
	EnableAdmin     bool     `mapstructure:"enable_admin" toml:"enable_admin"`
	CorsOrigins     []string `mapstructure:"cors_origins" toml:"cors_origins"`
	Limiter         JLimiter `mapstructure:"limiter" toml:"limiter"`
}

type JLimiter struct {
	Enable   bool     `mapstructure:"enable" toml:"enable"`
	Interval Duration `mapstructure:"interval" toml:"interval"`
	Quantum  int64    `mapstructure:"quantum" toml:"quantum"`
	Capacity int64    `mapstructure:"capacity" toml:"capacity"`
}

type Storage struct {
	KvType      string `mapstructure:"kv_type" toml:"kv_type"`
	KvCacheSize int    `mapstructure:"kv_cache_size" toml:"kv_cache_size"`
	Sync        bool   `mapstructure:"sync" toml:"sync"`
}

type Ledger struct {
	// unit: epoch
	UnbondPeriod uint64 `mapstructure:"unbond_period" toml:"unbond_period"`

	// 0 means UnbondPeriod + 1
	MaxUnbondingEntries uint64   `mapstructure:"max_unbonding_entries" toml:"max_unbonding_entries"`
	Assets              []string `mapstructure:"assets" toml:"assets"`
}

type Epoch struct {
	AutoAdvance     bool     `mapstructure:"auto_advance" toml:"auto_advance"`
	AdvanceInterval Duration `mapstructure:"advance_interval" toml:"advance_interval"`
}

type Monitor struct {
	Enable bool `mapstructure:"enable" toml:"enable"`
}

type Log struct {
	Level            string `mapstructure:"level" toml:"level"`
	Filename         string `mapstructure:"filename" toml:"filename"`
	ReportCaller     bool   `mapstructure:"report_caller" toml:"report_caller"`
	EnableColor      bool   `mapstructure:"enable_color" toml:"enable_color"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp" toml:"disable_timestamp"`

	Module LogModule `mapstructure:"module" toml:"module"`
}

type LogModule struct {
	App            string `mapstructure:"app" toml:"app"`
	API            string `mapstructure:"api" toml:"api"`
	Executor       string `mapstructure:"executor" toml:"executor"`
	Ledger         string `mapstructure:"ledger" toml:"ledger"`
	Storage        string `mapstructure:"storage" toml:"storage"`
	Epoch          string `mapstructure:"epoch" toml:"epoch"`
	SystemContract string `mapstructure:"system_contract" toml:"system_contract"`
}

func (c *Config) Bytes() ([]byte, error) {
	ret, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	return ret, nil
}

func (c *Config) MaxUnbondingEntries() uint64 {
	if c.Ledger.MaxUnbondingEntries == 0 {
		return c.Ledger.UnbondPeriod + 1
	}
	return c.Ledger.MaxUnbondingEntries
}

func (c *Config) Validate() error {
	if c.Ledger.UnbondPeriod == 0 {
		return errors.New("ledger.unbond_period must be greater than 0")
	}
	if len(c.Ledger.Assets) == 0 {
		return errors.New("ledger.assets must not be empty")
	}
	if c.Storage.KvType != KVStorageTypeLeveldb && c.Storage.KvType != KVStorageTypeMemory {
		return errors.Errorf("unknow kv type %s, expect leveldb or memory", c.Storage.KvType)
	}
	if c.Epoch.AutoAdvance && c.Epoch.AdvanceInterval.ToDuration() <= 0 {
		return errors.New("epoch.advance_interval must be positive when epoch.auto_advance is enabled")
	}
	if c.JsonRPC.Limiter.Enable && (c.JsonRPC.Limiter.Interval.ToDuration() <= 0 || c.JsonRPC.Limiter.Quantum <= 0 || c.JsonRPC.Limiter.Capacity <= 0) {
		return errors.New("jsonrpc.limiter interval, quantum and capacity must be positive when enabled")
	}
	return c.Genesis.Validate(c.Ledger.Assets)
}

func DefaultConfig() *Config {
	return &Config{
		Ulimit: 65535,
		Port: Port{
			JsonRpc: 8881,
			Monitor: 40011,
		},
		JsonRPC: JsonRPC{
			ReadTimeout:     Duration(5 * time.Second),
			WriteTimeout:    Duration(10 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
			EnableAdmin:     false,
			CorsOrigins:     []string{"*"},
			Limiter: JLimiter{
				Enable:   false,
				Interval: Duration(50 * time.Millisecond),
				Quantum:  500,
				Capacity: 10000,
			},
		},
		Storage: Storage{
			KvType:      KVStorageTypeLeveldb,
			KvCacheSize: KVStorageCacheSize,
			Sync:        KVStorageSync,
		},
		Ledger: Ledger{
			UnbondPeriod:        DefaultUnbondPeriod,
			MaxUnbondingEntries: 0,
			Assets:              []string{DefaultAsset},
		},
		Epoch: Epoch{
			AutoAdvance:     true,
			AdvanceInterval: Duration(1 * time.Minute),
		},
		Monitor: Monitor{
			Enable: true,
		},
		Log: Log{
			Level:            "info",
			Filename:         "unbonding-ledger",
			ReportCaller:     false,
			EnableColor:      true,
			DisableTimestamp: false,
			Module: LogModule{
				App:            "info",
				API:            "info",
				Executor:       "info",
				Ledger:         "info",
				Storage:        "info",
				Epoch:          "info",
				SystemContract: "info",
			},
		},
		Genesis: DefaultGenesisConfig(),
	}
}

func LoadConfig(repoRoot string) (*Config, error) {
	cfg, err := func() (*Config, error) {
		cfg := DefaultConfig()
		cfgPath := path.Join(repoRoot, CfgFileName)
		if !fileExist(cfgPath) {
			err := os.MkdirAll(repoRoot, 0755)
			if err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}

			if err := writeConfigWithEnv(cfgPath, cfg); err != nil {
				return nil, errors.Wrap(err, "failed to build default config")
			}
		} else {
			if err := CheckWritable(repoRoot); err != nil {
				return nil, err
			}
			if err := readConfigFromFile(cfgPath, cfg); err != nil {
				return nil, err
			}
		}

		return cfg, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
