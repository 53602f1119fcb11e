package entity

import (
	"github.com/lovelaced/polkadot-locks-report/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportRun struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ReportID     string             `bson:"reportId"`
	ChainId      string             `bson:"chainId"`
	TokenSymbol  string             `bson:"tokenSymbol"`
	CurrentBlock uint32             `bson:"currentBlock"`
	GeneratedAt  primitive.DateTime `bson:"generatedAt"`
	AccountCount int                `bson:"accountCount"`
}

type AccountReport struct {
	ID           primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	ReportID     string              `bson:"reportId"`
	ChainId      string              `bson:"chainId"`
	Address      string              `bson:"address"`
	CurrentBlock uint32              `bson:"currentBlock"`
	GeneratedAt  primitive.DateTime  `bson:"generatedAt"`
	Status       string              `bson:"status"`
	Report       types.AccountReport `bson:"report"`
}
