package game

import "math"

// spendTolerance absorbs float drift so that holding exactly the displayed
// price always buys the item.
const spendTolerance = 1e-9

// Ledger holds the current and lifetime amount of every resource.
// Amounts are always finite and non-negative.
type Ledger struct {
	amount   map[Resource]float64
	lifetime map[Resource]float64
}

// NewLedger returns an empty ledger with every resource at zero.
func NewLedger() *Ledger {
	l := &Ledger{
		amount:   make(map[Resource]float64, len(Resources)),
		lifetime: make(map[Resource]float64, len(Resources)),
	}
	for _, r := range Resources {
		l.amount[r] = 0
		l.lifetime[r] = 0
	}
	return l
}

// Add credits amount to r. Negative or non-finite amounts count as zero.
func (l *Ledger) Add(r Resource, amount float64) {
	if !knownResource(r) {
		return
	}
	amount = sanitize(amount)
	if amount == 0 {
		return
	}
	l.amount[r] = saturatingAdd(l.amount[r], amount)
	l.lifetime[r] = saturatingAdd(l.lifetime[r], amount)
}

// CanAfford reports whether TrySpend(r, amount) would succeed.
func (l *Ledger) CanAfford(r Resource, amount float64) bool {
	if !knownResource(r) || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return false
	}
	return l.amount[r]+spendTolerance >= amount
}

// TrySpend deducts amount from r if the balance covers it.
// It never mutates the ledger on failure.
func (l *Ledger) TrySpend(r Resource, amount float64) bool {
	if !l.CanAfford(r, amount) {
		return false
	}
	l.amount[r] = math.Max(0, l.amount[r]-amount)
	return true
}

// TrySpendAll deducts every cost or none of them.
func (l *Ledger) TrySpendAll(costs map[Resource]float64) bool {
	for r, amount := range costs {
		if !l.CanAfford(r, amount) {
			return false
		}
	}
	for r, amount := range costs {
		l.amount[r] = math.Max(0, l.amount[r]-amount)
	}
	return true
}

// Amount returns the current balance of r.
func (l *Ledger) Amount(r Resource) float64 { return l.amount[r] }

// Lifetime returns everything ever credited to r.
func (l *Ledger) Lifetime(r Resource) float64 { return l.lifetime[r] }

// restore overwrites a balance, used when loading a save.
func (l *Ledger) restore(r Resource, amount, lifetime float64) {
	if !knownResource(r) {
		return
	}
	amount = sanitize(amount)
	l.amount[r] = amount
	l.lifetime[r] = math.Max(sanitize(lifetime), amount)
}

// saturatingAdd adds two finite non-negative values, stopping at MaxFloat64.
func saturatingAdd(a, b float64) float64 {
	if sum := a + b; !math.IsInf(sum, 1) {
		return sum
	}
	return math.MaxFloat64
}

// sanitize maps NaN, infinities and negatives to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
