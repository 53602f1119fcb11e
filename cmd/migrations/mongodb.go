package main

import (
	"context"
	"flag"
	"time"

	"github.com/lovelaced/polkadot-locks-report/db"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file, if empty string defaults will be used")

	flag.Parse()

	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, *configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	utils.Config = cfg

	mongo, err := db.InitMongodb(utils.Config.MongoDB.ConnectionString, utils.Config.MongoDB.Instance, utils.Config.Chain.Name)
	if err != nil {
		logrus.Fatal(err)
	}
	defer mongo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := mongo.EnsureIndexes(ctx); err != nil {
		utils.LogFatal(err, "error running mongodb migrations", 0)
	}

	logrus.WithField("collections", db.Collections).Info("mongodb migrations done")
}
