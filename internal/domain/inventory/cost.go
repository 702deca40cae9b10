package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implements the running weighted-average cost (domain service).
// NewAverage = ((CurrentQty * CurrentAvg) + (IncomingQty * IncomingCost)) / (CurrentQty + IncomingQty)
//
// When the variant held no stock before the merge the incoming cost stands alone;
// stale price history from before a depletion is never blended back in.
func WeightedAverageCost(currentQty int64, currentAvg decimal.Decimal, incomingQty int64, incomingCost decimal.Decimal) decimal.Decimal {
	if currentQty <= 0 {
		return incomingCost
	}
	cur := decimal.NewFromInt(currentQty)
	inc := decimal.NewFromInt(incomingQty)
	sum := cur.Add(inc)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := cur.Mul(currentAvg).Add(inc.Mul(incomingCost))
	return num.Div(sum)
}
