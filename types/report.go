package types

import "time"

// AccountStatus is the outcome of computing one account's locks
type AccountStatus string

const (
	StatusOK         AccountStatus = "ok"
	StatusDegraded   AccountStatus = "degraded"
	StatusIncomplete AccountStatus = "incomplete"
	StatusFailed     AccountStatus = "failed"
)

// Report is the serializable result of one report run
type Report struct {
	ID           string          `json:"id" bson:"id"`
	Chain        string          `json:"chain" bson:"chain"`
	TokenSymbol  string          `json:"tokenSymbol" bson:"tokenSymbol"`
	CurrentBlock BlockNumber     `json:"currentBlock" bson:"currentBlock"`
	GeneratedAt  time.Time       `json:"generatedAt" bson:"generatedAt"`
	Accounts     []AccountReport `json:"accounts" bson:"accounts"`
}

// AccountReport is the report entry of a single account
type AccountReport struct {
	Address    string            `json:"address" bson:"address"`
	PublicKey  string            `json:"publicKey,omitempty" bson:"publicKey,omitempty"`
	Status     AccountStatus     `json:"status" bson:"status"`
	Failures   []string          `json:"failures,omitempty" bson:"failures,omitempty"`
	Voting     LockView          `json:"voting" bson:"voting"`
	Vesting    LockView          `json:"vesting" bson:"vesting"`
	Records    []LockRecordView  `json:"records" bson:"records"`
	Liquidity  []LiquidityBucket `json:"liquidity" bson:"liquidity"`
	LockTotals []BalanceLockView `json:"lockTotals" bson:"lockTotals"`
}

// LockView is an aggregated lock as presented to a renderer
type LockView struct {
	Amount          string      `json:"amount" bson:"amount"`
	AmountFormatted string      `json:"amountFormatted" bson:"amountFormatted"`
	UnlockBlock     BlockNumber `json:"unlockBlock" bson:"unlockBlock"`
	Indefinite      bool        `json:"indefinite" bson:"indefinite"`
	Active          bool        `json:"active" bson:"active"`
	EstimatedUnlock *time.Time  `json:"estimatedUnlock,omitempty" bson:"estimatedUnlock,omitempty"`
	Remaining       string      `json:"remaining" bson:"remaining"`
	Contributing    int         `json:"contributing" bson:"contributing"`
	Authoritative   bool        `json:"authoritative" bson:"authoritative"`
}

// LockRecordView is a contributing lock record for the detailed data display
type LockRecordView struct {
	Class           LockClass   `json:"class" bson:"class"`
	Source          LockSource  `json:"source" bson:"source"`
	Description     string      `json:"description" bson:"description"`
	Amount          string      `json:"amount" bson:"amount"`
	AmountFormatted string      `json:"amountFormatted" bson:"amountFormatted"`
	UnlockBlock     BlockNumber `json:"unlockBlock" bson:"unlockBlock"`
	Indefinite      bool        `json:"indefinite" bson:"indefinite"`
	Active          bool        `json:"active" bson:"active"`
	EstimatedUnlock *time.Time  `json:"estimatedUnlock,omitempty" bson:"estimatedUnlock,omitempty"`
	Remaining       string      `json:"remaining" bson:"remaining"`
}

// LiquidityBucket is one rung of the liquidity ladder
type LiquidityBucket struct {
	Category string `json:"lockCategory" bson:"lockCategory"`
	Amount   string `json:"amount" bson:"amount"`
	Class    string `json:"class" bson:"class"`
}

// BalanceLockView is a balances pallet lock entry (lock totals)
type BalanceLockView struct {
	ID              string `json:"id" bson:"id"`
	Amount          string `json:"amount" bson:"amount"`
	AmountFormatted string `json:"amountFormatted" bson:"amountFormatted"`
}

// ApiResponse is a struct to hold api response data
type ApiResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// ApiLocksRequest is the body of a multi-account lock query
type ApiLocksRequest struct {
	Addresses []string `json:"addresses"`
}

// ApiHeadResponse is the response of the head endpoint
type ApiHeadResponse struct {
	Chain  string      `json:"chain"`
	Number BlockNumber `json:"number"`
}
