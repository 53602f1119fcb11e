package utils

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/lovelaced/polkadot-locks-report/config"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v2"
)

// Config is the globally accessible configuration
var Config *types.Config

func readConfigEnv(cfg *types.Config) error {
	return envconfig.Process("", cfg)
}

// ReadConfig will process a configuration
func ReadConfig(cfg *types.Config, path string) error {

	err := readConfigFile(cfg, path)
	if err != nil {
		return err
	}

	err = readConfigEnv(cfg)
	if err != nil {
		return fmt.Errorf("error processing config environment: %w", err)
	}

	if cfg.Chain.ConfigPath == "" {
		switch cfg.Chain.Name {
		case "polkadot":
			err = yaml.Unmarshal([]byte(config.PolkadotChainYml), &cfg.Chain.Config)
		case "kusama":
			err = yaml.Unmarshal([]byte(config.KusamaChainYml), &cfg.Chain.Config)
		default:
			return fmt.Errorf("tried to set known chain-config, but unknown chain-name %q", cfg.Chain.Name)
		}
		if err != nil {
			return err
		}
	} else {
		f, err := os.Open(cfg.Chain.ConfigPath)
		if err != nil {
			return fmt.Errorf("error opening Chain Config file %v: %w", cfg.Chain.ConfigPath, err)
		}
		defer f.Close()
		var chainConfig *types.ChainConfig
		decoder := yaml.NewDecoder(f)
		err = decoder.Decode(&chainConfig)
		if err != nil {
			return fmt.Errorf("error decoding Chain Config file %v: %w", cfg.Chain.ConfigPath, err)
		}
		cfg.Chain.Config = *chainConfig
	}
	cfg.Chain.Name = cfg.Chain.Config.ConfigName

	if err := validateChainConfig(&cfg.Chain.Config); err != nil {
		return err
	}

	if cfg.Node.Endpoint == "" {
		cfg.Node.Endpoint = cfg.Chain.Config.DefaultEndpoint
	}
	if cfg.Report.Workers <= 0 {
		cfg.Report.Workers = 1
	}

	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("error parsing log level %q: %w", cfg.LogLevel, err)
		}
		logrus.SetLevel(level)
	}

	logrus.WithFields(logrus.Fields{
		"configName":        cfg.Chain.Config.ConfigName,
		"tokenSymbol":       cfg.Chain.Config.TokenSymbol,
		"secondsPerBlock":   cfg.Chain.Config.SecondsPerBlock,
		"voteLockingPeriod": cfg.Chain.Config.VoteLockingPeriod,
		"endpoint":          cfg.Node.Endpoint,
	}).Infof("did init config")

	return nil
}

func validateChainConfig(cfg *types.ChainConfig) error {
	if cfg.ConfigName == "" {
		return fmt.Errorf("chain config is missing CONFIG_NAME")
	}
	if cfg.SecondsPerBlock == 0 {
		return fmt.Errorf("chain config %v: SECONDS_PER_BLOCK must be positive", cfg.ConfigName)
	}
	if cfg.VoteLockingPeriod == 0 {
		return fmt.Errorf("chain config %v: VOTE_LOCKING_PERIOD must be positive", cfg.ConfigName)
	}
	return nil
}

func readConfigFile(cfg *types.Config, path string) error {
	if path == "" {
		return yaml.Unmarshal([]byte(config.DefaultConfigYml), cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file %v: %v", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return fmt.Errorf("error decoding config file %v: %v", path, err)
	}

	return nil
}

// ToDoc converts a value into a bson document
func ToDoc(v interface{}) (doc *bson.D, err error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	err = bson.Unmarshal(data, &doc)
	return
}

// WaitForCtrlC blocks until the process receives SIGINT or SIGTERM
func WaitForCtrlC() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

// LogFatal logs a fatal error with callstack info that skips callerSkip many levels with arbitrarily many additional infos.
// callerSkip equal to 0 gives you info directly where LogFatal is called.
func LogFatal(err error, errorMsg interface{}, callerSkip int, additionalInfos ...string) {
	logErrorInfo(err, callerSkip, additionalInfos...).Fatal(errorMsg)
}

// LogError logs an error with callstack info that skips callerSkip many levels with arbitrarily many additional infos.
// callerSkip equal to 0 gives you info directly where LogError is called.
func LogError(err error, errorMsg interface{}, callerSkip int, additionalInfos ...string) {
	logErrorInfo(err, callerSkip, additionalInfos...).Error(errorMsg)
}

func logErrorInfo(err error, callerSkip int, additionalInfos ...string) *logrus.Entry {
	logFields := logrus.NewEntry(logrus.StandardLogger())

	pc, fullFilePath, line, ok := runtime.Caller(callerSkip + 2)
	if ok {
		logFields = logFields.WithFields(logrus.Fields{
			"cs_file":     filepath.Base(fullFilePath),
			"cs_function": runtime.FuncForPC(pc).Name(),
			"cs_line":     line,
		})
	} else {
		logFields = logFields.WithField("runtime", "Callstack cannot be read")
	}

	if err != nil {
		logFields = logFields.WithField("error type", fmt.Sprintf("%T", err)).WithError(err)
	}

	for idx, info := range additionalInfos {
		logFields = logFields.WithField(fmt.Sprintf("info_%v", idx), info)
	}

	return logFields
}
