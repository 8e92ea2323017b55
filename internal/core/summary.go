package core

// SummarizeByCategory reduces a range-query result into per-category totals.
// Categories with no records in the input are absent from the map; callers
// must not rely on any iteration order.
func SummarizeByCategory(records []CostRecord) map[Category]Money {
	totals := make(map[Category]Money)
	for _, r := range records {
		t := totals[r.Category]
		t.Cents += r.Sum.Cents
		totals[r.Category] = t
	}
	return totals
}

// GrandTotal sums all per-category totals, used for percentage-of-total
// derivation at render time.
func GrandTotal(totals map[Category]Money) Money {
	var sum Money
	for _, t := range totals {
		sum.Cents += t.Cents
	}
	return sum
}
