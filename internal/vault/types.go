package vault

import "time"

// Summary mirrors the payload returned by /api/wallet/summary.
type Summary struct {
	Wallet Wallet       `json:"wallet"`
	Price  GoldPrice    `json:"price"`
	Vault  VaultSummary `json:"vault"`
	Plans  []Plan       `json:"bnslPlans"`
}

// Wallet holds the account balances.
type Wallet struct {
	GoldGrams   float64 `json:"goldGrams"`
	LockedGrams float64 `json:"lockedGrams"`
	CashBalance float64 `json:"cashBalance"`
	Currency    string  `json:"currency"`
}

// AvailableGrams returns the gold not locked in plans or pending trades.
func (w Wallet) AvailableGrams() float64 {
	avail := w.GoldGrams - w.LockedGrams
	if avail < 0 {
		return 0
	}
	return avail
}

// GoldPrice is the spot quote used to value holdings.
type GoldPrice struct {
	PerGram   float64 `json:"pricePerGram"`
	Currency  string  `json:"currency"`
	Change24h float64 `json:"change24h"` // percent
	UpdatedAt string  `json:"updatedAt"`
}

// ParsedUpdatedAt returns the quote time.
func (p GoldPrice) ParsedUpdatedAt() time.Time {
	return parseTime(p.UpdatedAt)
}

// VaultSummary lists allocated bars held in storage.
type VaultSummary struct {
	TotalGrams float64   `json:"totalGrams"`
	Holdings   []Holding `json:"holdings"`
}

// Holding is one allocated bar.
type Holding struct {
	BarSerial string  `json:"barSerial"`
	Location  string  `json:"location"`
	Grams     float64 `json:"grams"`
	Purity    string  `json:"purity"`
}

// Plan is a buy-now-sell-later plan.
type Plan struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Grams        float64 `json:"grams"`
	MaturityDate string  `json:"maturityDate"`
}

// ParsedMaturity returns the plan maturity date.
func (p Plan) ParsedMaturity() time.Time {
	return parseTime(p.MaturityDate)
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Grams     float64 `json:"grams"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"createdAt"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (t Transaction) ParsedCreatedAt() time.Time {
	return parseTime(t.CreatedAt)
}

// TransactionListResponse wraps /api/wallet/transactions.
type TransactionListResponse struct {
	Items []Transaction `json:"items"`
}

// PortfolioValue values gold at the current quote plus cash.
func (s Summary) PortfolioValue() float64 {
	return s.Wallet.GoldGrams*s.Price.PerGram + s.Wallet.CashBalance
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
