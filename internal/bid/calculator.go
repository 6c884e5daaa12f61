package bid

import (
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// CalculationInput is the auction state a calculation is made against.
// Totals must be read in the same transaction as any write that depends on the result.
type CalculationInput struct {
	Price         decimal.Decimal
	StartPrice    decimal.Decimal
	PriceStep     decimal.Decimal
	Totals        []domain.BidderTotal
	BidderAddress string
}

// CalculationInfo is the minimum next bid of one bidder
type CalculationInfo struct {
	BidderPendingAmount decimal.Decimal `json:"bidder_pending_amount"`
	IsFirstBid          bool            `json:"is_first_bid"`
	// MinBidderAmount is the smallest amount the bidder may add
	MinBidderAmount decimal.Decimal `json:"min_bidder_amount"`
	// MinBidderBalance is the pending total the bidder reaches by adding MinBidderAmount
	MinBidderBalance     decimal.Decimal `json:"min_bidder_balance"`
	PriceStep            decimal.Decimal `json:"price_step"`
	ContractPendingPrice decimal.Decimal `json:"contract_pending_price"`
}

// Calculate computes the minimum next bid of input.BidderAddress
func Calculate(input CalculationInput) CalculationInfo {
	pending := decimal.Zero
	anyBid := false
	for _, total := range input.Totals {
		if total.Bids > 0 || total.Pending.IsPositive() {
			anyBid = true
		}
		if domain.SameAddress(total.BidderAddress, input.BidderAddress) {
			pending = total.Pending
		}
	}

	isFirstBid := input.Price.Equal(input.StartPrice) && !anyBid

	minAmount := input.Price.Sub(pending)
	if minAmount.IsPositive() && !isFirstBid {
		minAmount = minAmount.Add(input.PriceStep)
	}

	return CalculationInfo{
		BidderPendingAmount:  pending,
		IsFirstBid:           isFirstBid,
		MinBidderAmount:      minAmount,
		MinBidderBalance:     pending.Add(minAmount),
		PriceStep:            input.PriceStep,
		ContractPendingPrice: input.Price,
	}
}

// Validate checks a bid amount against a calculation.
// It returns a bad request error describing the first violated rule.
func (info CalculationInfo) Validate(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewBadRequestError("bid amount must be positive")
	}
	if amount.LessThan(info.MinBidderAmount) {
		return domain.NewBadRequestError("bid amount %s is below the minimum %s", amount, info.MinBidderAmount)
	}
	if info.ContractPendingPrice.GreaterThanOrEqual(info.PriceStep) && amount.LessThan(info.PriceStep) {
		return domain.NewBadRequestError("bid amount %s is below the price step %s", amount, info.PriceStep)
	}
	return nil
}

// LeadingPrice returns the pending total of the leader, or start when nobody has a pending bid.
// Totals are ordered leader first.
func LeadingPrice(totals []domain.BidderTotal, start decimal.Decimal) decimal.Decimal {
	if len(totals) > 0 && totals[0].Pending.IsPositive() {
		return totals[0].Pending
	}
	return start
}
