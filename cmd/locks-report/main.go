package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lovelaced/polkadot-locks-report/chain"
	"github.com/lovelaced/polkadot-locks-report/db"
	"github.com/lovelaced/polkadot-locks-report/report"
	"github.com/lovelaced/polkadot-locks-report/services"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file, if empty string defaults will be used")
	addressesPath := flag.String("addresses-file", "", "File with one address per line, overrides report.addressesPath")
	addressList := flag.String("addresses", "", "Comma separated addresses, used instead of the addresses file")
	outputPath := flag.String("output", "", "Path of the json report, defaults to locks_report_<timestamp>.json")
	fixturePath := flag.String("fixture", "", "Read chain state from a yaml fixture instead of the node")
	flag.Parse()

	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, *configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	utils.Config = cfg
	logrus.WithField("config", *configPath).WithField("chainName", utils.Config.Chain.Config.ConfigName).Printf("starting")

	if *addressesPath != "" {
		cfg.Report.AddressesPath = *addressesPath
	}
	if *outputPath != "" {
		cfg.Report.OutputPath = *outputPath
	}
	if *fixturePath != "" {
		cfg.Report.FixturePath = *fixturePath
	}

	var addresses []string
	switch {
	case *addressList != "":
		addresses = utils.SplitAddresses(*addressList)
	case cfg.Report.AddressesPath != "":
		addresses, err = utils.ReadAddressesFile(cfg.Report.AddressesPath)
		if err != nil {
			logrus.Fatal(err)
		}
	default:
		logrus.Fatal("no addresses provided, use -addresses or -addresses-file")
	}
	if len(addresses) == 0 {
		logrus.Fatal("address list is empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := chain.Open(cfg)
	if err != nil {
		utils.LogFatal(err, "error opening chain source", 0)
	}
	defer closeSource()

	generatedAt := time.Now()
	reporter := services.NewReporter(src, cfg.Chain.Config, cfg.Report.Workers, nil)
	run, err := reporter.Generate(ctx, addresses)
	if err != nil {
		utils.LogFatal(err, "error generating lock report", 0)
	}
	rpt := report.Build(report.NewID(), run.Accounts, run.Head, generatedAt, cfg.Chain.Config)

	output := cfg.Report.OutputPath
	if output == "" {
		output = fmt.Sprintf("locks_report_%s.json", generatedAt.UTC().Format("20060102150405"))
	}
	data, err := json.MarshalIndent(rpt, "", "  ")
	if err != nil {
		utils.LogFatal(err, "error encoding report", 0)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		utils.LogFatal(err, "error writing report", 0, output)
	}

	if cfg.MongoDB.Enabled {
		mongo, err := db.InitMongodb(cfg.MongoDB.ConnectionString, cfg.MongoDB.Instance, cfg.Chain.Name)
		if err != nil {
			utils.LogFatal(err, "error initializing mongodb", 0)
		}
		defer mongo.Close()
		if err := mongo.SaveReport(ctx, rpt); err != nil {
			utils.LogError(err, "error storing report", 0, rpt.ID)
		}
	}

	counts := map[types.AccountStatus]int{}
	for _, a := range rpt.Accounts {
		counts[a.Status]++
	}
	logrus.WithFields(logrus.Fields{
		"reportId":   rpt.ID,
		"output":     output,
		"head":       rpt.CurrentBlock,
		"ok":         counts[types.StatusOK],
		"degraded":   counts[types.StatusDegraded],
		"incomplete": counts[types.StatusIncomplete],
		"failed":     counts[types.StatusFailed],
	}).Info("lock report written")
}
