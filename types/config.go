package types

// Config is a struct to hold the configuration data
type Config struct {
	LogLevel string `yaml:"logLevel" envconfig:"LOG_LEVEL"`
	Chain    struct {
		Name       string      `yaml:"name" envconfig:"NAME"`
		ConfigPath string      `yaml:"configPath" envconfig:"CONFIG_PATH"`
		Config     ChainConfig `yaml:"config"`
	} `yaml:"chain"`
	Node struct {
		Endpoint string `yaml:"endpoint" envconfig:"ENDPOINT"`
	} `yaml:"node"`
	Report struct {
		Workers       int    `yaml:"workers" envconfig:"WORKERS"`
		AddressesPath string `yaml:"addressesPath" envconfig:"ADDRESSES_PATH"`
		OutputPath    string `yaml:"outputPath" envconfig:"OUTPUT_PATH"`
		FixturePath   string `yaml:"fixturePath" envconfig:"FIXTURE_PATH"`
	} `yaml:"report"`
	Cache struct {
		SizeBytes            int `yaml:"sizeBytes" envconfig:"SIZE_BYTES"`
		ReferendumTTLSeconds int `yaml:"referendumTtlSeconds" envconfig:"REFERENDUM_TTL_SECONDS"`
		HeadTTLSeconds       int `yaml:"headTtlSeconds" envconfig:"HEAD_TTL_SECONDS"`
	} `yaml:"cache"`
	MongoDB struct {
		Enabled          bool   `yaml:"enabled" envconfig:"ENABLED"`
		ConnectionString string `yaml:"connectionString" envconfig:"CONNECTION_STRING"`
		Instance         string `yaml:"instance" envconfig:"INSTANCE"`
	} `yaml:"mongodb"`
	Frontend struct {
		Server struct {
			Port string `yaml:"port" envconfig:"PORT"`
			Host string `yaml:"host" envconfig:"HOST"`
		} `yaml:"server"`
	} `yaml:"frontend"`
	Metrics struct {
		Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
	} `yaml:"metrics"`
	Pprof struct {
		Enabled bool   `yaml:"enabled" envconfig:"ENABLED"`
		Port    string `yaml:"port" envconfig:"PORT"`
	} `yaml:"pprof"`
}

// ChainConfig holds the per-chain constants the lock computation depends on
type ChainConfig struct {
	ConfigName        string `yaml:"CONFIG_NAME"`
	TokenSymbol       string `yaml:"TOKEN_SYMBOL"`
	TokenDecimals     uint8  `yaml:"TOKEN_DECIMALS"`
	SS58Prefix        uint16 `yaml:"SS58_PREFIX"`
	SecondsPerBlock   uint64 `yaml:"SECONDS_PER_BLOCK"`
	VoteLockingPeriod uint32 `yaml:"VOTE_LOCKING_PERIOD"`
	DefaultEndpoint   string `yaml:"DEFAULT_ENDPOINT"`
}
