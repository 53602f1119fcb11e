package config

import _ "embed"

//go:embed default.config.yml
var DefaultConfigYml string

//go:embed polkadot.chain.yml
var PolkadotChainYml string

//go:embed kusama.chain.yml
var KusamaChainYml string
