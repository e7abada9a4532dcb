package calculator

import (
	"math"
	"sort"
)

// Epsilon is the noise floor for balances and transfers. Anything at or
// below one cent is treated as settled.
const Epsilon = 0.01

// Share is one participant's portion of an entry.
type Share struct {
	UserID string
	Amount float64
}

// Entry represents an expense with the minimal information needed for
// balance calculations.
type Entry struct {
	Currency string
	PayerID  string
	Amount   float64
	Shares   []Share
}

// Transfer is a directed payment obligation in one currency. It is both the
// simplifier's output and, for recorded settlements, an input adjustment.
type Transfer struct {
	From     string // Person who owes (or who paid, for a settlement)
	To       string // Person who is owed (or who received)
	Amount   float64
	Currency string
}

// MemberBalance represents the balance information for one member in one
// currency.
type MemberBalance struct {
	UserID     string
	Currency   string
	NetBalance float64 // Positive = owed money, Negative = owes money
	TotalPaid  float64 // Total amount paid across all entries
	TotalOwed  float64 // Total amount this person owes
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Currencies returns the distinct currencies used by entries and
// settlements. The preferred currency (if used) comes first, the rest in
// alphabetical order.
func Currencies(entries []Entry, settlements []Transfer, preferred string) []string {
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.Currency] = true
	}
	for _, s := range settlements {
		seen[s.Currency] = true
	}

	var rest []string
	for c := range seen {
		if c != preferred {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)

	if seen[preferred] {
		return append([]string{preferred}, rest...)
	}
	return rest
}

// CalculateBalances computes per-member balances for a single currency.
//
// order lists the member ids in join order; each gets a row even with no
// activity. Ids that only appear in the ledger follow in first-appearance
// order. The returned slice follows that order.
//
// Algorithm:
//   - For each entry: payer contributed +amount, each participant owes their share
//   - For each settlement: payer's balance improves, receiver's balance decreases
//   - net_balance = total_paid - total_owed
func CalculateBalances(entries []Entry, settlements []Transfer, order []string, currency string) []MemberBalance {
	index := make(map[string]int)
	var balances []MemberBalance

	get := func(userID string) *MemberBalance {
		if i, ok := index[userID]; ok {
			return &balances[i]
		}
		index[userID] = len(balances)
		balances = append(balances, MemberBalance{UserID: userID, Currency: currency})
		return &balances[len(balances)-1]
	}

	for _, userID := range order {
		get(userID)
	}

	for _, e := range entries {
		if e.Currency != currency || e.PayerID == "" {
			continue
		}
		get(e.PayerID).TotalPaid += e.Amount
		for _, share := range e.Shares {
			get(share.UserID).TotalOwed += share.Amount
		}
	}

	for _, s := range settlements {
		if s.Currency != currency {
			continue
		}
		get(s.From).TotalPaid += s.Amount
		get(s.To).TotalOwed += s.Amount
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].TotalPaid - balances[i].TotalOwed
	}
	return balances
}

// SimplifyDebts reduces the ledger to the smallest set of transfers that
// zero every balance, independently per currency. Currencies never net
// against each other.
func SimplifyDebts(entries []Entry, settlements []Transfer, order []string, preferred string) []Transfer {
	var transfers []Transfer
	for _, currency := range Currencies(entries, settlements, preferred) {
		balances := CalculateBalances(entries, settlements, order, currency)
		transfers = append(transfers, simplifyCurrency(balances, currency)...)
	}
	return transfers
}

type party struct {
	userID    string
	remaining float64
}

// simplifyCurrency matches debtors with creditors using greedy largest-first
// matching. Both sides are sorted stably by rounded magnitude so ties keep
// the input (join) order.
func simplifyCurrency(balances []MemberBalance, currency string) []Transfer {
	var creditors, debtors []party
	for _, bal := range balances {
		if bal.NetBalance > Epsilon {
			creditors = append(creditors, party{bal.UserID, bal.NetBalance})
		} else if bal.NetBalance < -Epsilon {
			debtors = append(debtors, party{bal.UserID, -bal.NetBalance})
		}
	}

	byAmountDesc := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool {
			return Round2(ps[i].remaining) > Round2(ps[j].remaining)
		}
	}
	sort.SliceStable(creditors, byAmountDesc(creditors))
	sort.SliceStable(debtors, byAmountDesc(debtors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := math.Min(debtor.remaining, creditor.remaining)
		if amount > Epsilon {
			transfers = append(transfers, Transfer{
				From:     debtor.userID,
				To:       creditor.userID,
				Amount:   Round2(amount),
				Currency: currency,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < Epsilon {
			i++
		}
		if creditor.remaining < Epsilon {
			j++
		}
	}
	return transfers
}
