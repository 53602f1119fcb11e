package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/lovelaced/polkadot-locks-report/chain"
	"github.com/lovelaced/polkadot-locks-report/db"
	"github.com/lovelaced/polkadot-locks-report/handlers"
	"github.com/lovelaced/polkadot-locks-report/interfaces"
	"github.com/lovelaced/polkadot-locks-report/services"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/prometheus/client_golang/prometheus"
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
	logrus.WithField("config", *configPath).WithField("chainName", utils.Config.Chain.Config.ConfigName).Printf("starting")

	// enable pprof endpoint if requested
	if utils.Config.Pprof.Enabled {
		go func() {
			logrus.Infof("starting pprof http server on port %s", utils.Config.Pprof.Port)
			logrus.Info(http.ListenAndServe(fmt.Sprintf("localhost:%s", utils.Config.Pprof.Port), nil))
		}()
	}

	src, closeSource, err := chain.Open(cfg)
	if err != nil {
		utils.LogFatal(err, "error opening chain source", 0)
	}
	defer closeSource()

	var store interfaces.ReportStore
	if cfg.MongoDB.Enabled {
		mongo, err := db.InitMongodb(cfg.MongoDB.ConnectionString, cfg.MongoDB.Instance, cfg.Chain.Name)
		if err != nil {
			utils.LogFatal(err, "error initializing mongodb", 0)
		}
		defer mongo.Close()
		store = mongo
	}

	metrics := &services.Metrics{}
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics.Register(registry)
		gatherer = registry
	}

	reporter := services.NewReporter(src, cfg.Chain.Config, cfg.Report.Workers, metrics)
	router := handlers.NewRouter(handlers.NewApi(reporter, store, cfg.Chain.Config), gatherer)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Frontend.Server.Host, cfg.Frontend.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}
	go func() {
		logrus.Infof("http server listening on %v", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.LogFatal(err, "error serving http", 0)
		}
	}()

	utils.WaitForCtrlC()

	logrus.Println("exiting...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("error shutting down http server")
	}
}
