package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovelaced/polkadot-locks-report/entity"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var REPORT_RUNS = "report_runs"
var ACCOUNT_REPORTS = "account_reports"

// Collections lists every collection the report store uses
var Collections = []string{REPORT_RUNS, ACCOUNT_REPORTS}

var logger = logrus.StandardLogger().WithField("module", "db")

type Mongo struct {
	Client  *mongo.Client
	Db      *mongo.Database
	ChainId string
}

func InitMongodb(connectionString, instance, chainId string) (*Mongo, error) {
	// Use the SetServerAPIOptions() method to set the Stable API version to 1
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(connectionString).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongodb: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongodb: %w", err)
	}

	mongodb := &Mongo{
		Client:  client,
		Db:      client.Database(instance),
		ChainId: chainId,
	}
	return mongodb, nil
}

func (mongodb *Mongo) Close() {
	if err := mongodb.Client.Disconnect(context.TODO()); err != nil {
		logger.WithError(err).Error("error disconnecting from mongodb")
	}
}

// EnsureIndexes creates the collections and the latest-report lookup index
func (mongodb *Mongo) EnsureIndexes(ctx context.Context) error {
	existing, err := mongodb.Db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}
	exists := make(map[string]bool, len(existing))
	for _, name := range existing {
		exists[name] = true
	}
	for _, name := range Collections {
		if exists[name] {
			continue
		}
		if err := mongodb.Db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("error creating collection %v: %w", name, err)
		}
		logger.Infof("created collection %v", name)
	}

	_, err = mongodb.Db.Collection(ACCOUNT_REPORTS).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chainId", Value: 1}, {Key: "address", Value: 1}, {Key: "generatedAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("error creating account report index: %w", err)
	}
	_, err = mongodb.Db.Collection(REPORT_RUNS).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reportId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating report run index: %w", err)
	}
	return nil
}

func reportDocuments(report *types.Report, chainId string) (*entity.ReportRun, []interface{}, error) {
	generatedAt := primitive.NewDateTimeFromTime(report.GeneratedAt)
	run := &entity.ReportRun{
		ReportID:     report.ID,
		ChainId:      chainId,
		TokenSymbol:  report.TokenSymbol,
		CurrentBlock: uint32(report.CurrentBlock),
		GeneratedAt:  generatedAt,
		AccountCount: len(report.Accounts),
	}

	docs := make([]interface{}, 0, len(report.Accounts))
	for _, account := range report.Accounts {
		doc, err := utils.ToDoc(&entity.AccountReport{
			ReportID:     report.ID,
			ChainId:      chainId,
			Address:      account.Address,
			CurrentBlock: uint32(report.CurrentBlock),
			GeneratedAt:  generatedAt,
			Status:       string(account.Status),
			Report:       account,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("error encoding account report %v: %w", account.Address, err)
		}
		docs = append(docs, doc)
	}
	return run, docs, nil
}

// SaveReport stores a report run and one document per account
func (mongodb *Mongo) SaveReport(ctx context.Context, report *types.Report) error {
	run, docs, err := reportDocuments(report, mongodb.ChainId)
	if err != nil {
		return err
	}

	_, err = mongodb.Db.Collection(REPORT_RUNS).InsertOne(ctx, run)
	if err != nil {
		return fmt.Errorf("error saving report run %v: %w", report.ID, err)
	}

	if len(docs) > 0 {
		_, err = mongodb.Db.Collection(ACCOUNT_REPORTS).InsertMany(ctx, docs)
		if err != nil {
			return fmt.Errorf("error saving account reports of run %v: %w", report.ID, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"reportId": report.ID,
		"accounts": len(docs),
	}).Info("saved report to mongodb")
	return nil
}

// GetLatestAccountReport returns the most recent stored report of an address, nil if there is none
func (mongodb *Mongo) GetLatestAccountReport(ctx context.Context, address string) (*types.AccountReport, error) {
	filter := bson.M{"chainId": mongodb.ChainId, "address": address}
	var result entity.AccountReport

	err := mongodb.Db.Collection(ACCOUNT_REPORTS).FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}})).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result.Report, nil
}
