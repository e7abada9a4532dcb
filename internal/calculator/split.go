package calculator

import (
	"fmt"
	"math"
)

// PersonSplit represents the calculated split for one person
type PersonSplit struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Item represents a single line on a receipt
type Item struct {
	Description string
	Amount      float64
	AssignedTo  []string
}

// EqualShares splits amount evenly to the cent. Leftover cents go one each
// to the first participants, so the shares always sum to the rounded amount.
func EqualShares(amount float64, participants []string) ([]Share, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("amount must be positive")
	}

	cents := int64(math.Round(amount * 100))
	n := int64(len(participants))
	base := cents / n
	remainder := cents % n

	shares := make([]Share, len(participants))
	for i, p := range participants {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = Share{UserID: p, Amount: float64(c) / 100}
	}
	return shares, nil
}

// CalculateSplit computes how much each person owes including proportional tax
// Based on the algorithm: person_total = person_subtotal × (1 + (total_tax / bill_subtotal))
func CalculateSplit(items []Item, billTotal float64, billSubtotal float64, participants []string) (map[string]*PersonSplit, error) {
	if billSubtotal == 0 {
		return nil, fmt.Errorf("subtotal cannot be zero")
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	tax := billTotal - billSubtotal
	splits := make(map[string]*PersonSplit)

	for _, p := range participants {
		splits[p] = &PersonSplit{}
	}

	// If no items, split total equally among all participants
	if len(items) == 0 {
		n := float64(len(participants))
		for _, split := range splits {
			split.Subtotal = billSubtotal / n
			split.Tax = tax / n
			split.Total = billTotal / n
		}
		return splits, nil
	}

	for _, item := range items {
		if len(item.AssignedTo) == 0 {
			continue
		}

		perPersonAmount := item.Amount / float64(len(item.AssignedTo))
		for _, person := range item.AssignedTo {
			if split, exists := splits[person]; exists {
				split.Subtotal += perPersonAmount
			}
		}
	}

	// Apply proportional tax and calculate total
	for _, split := range splits {
		split.Tax = split.Subtotal * (tax / billSubtotal)
		split.Total = split.Subtotal + split.Tax
	}

	return splits, nil
}

// ToShares rounds each person's total to the cent in participant order and
// folds the rounding residue into the largest share, so the shares sum to
// total.
func ToShares(splits map[string]*PersonSplit, participants []string, total float64) []Share {
	shares := make([]Share, 0, len(participants))
	var sum float64
	largest := -1
	for _, p := range participants {
		split, ok := splits[p]
		if !ok {
			continue
		}
		amount := Round2(split.Total)
		sum += amount
		shares = append(shares, Share{UserID: p, Amount: amount})
		if largest < 0 || amount > shares[largest].Amount {
			largest = len(shares) - 1
		}
	}
	if largest >= 0 {
		shares[largest].Amount = Round2(shares[largest].Amount + Round2(total) - sum)
	}
	return shares
}
