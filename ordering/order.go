// Package ordering validates and applies reordering permutations over a
// fixed set of sequenced items, such as the problems of a contest or
// workbook. Orders are 1-based throughout; callers using another
// convention translate at their own boundary.
package ordering

// Item is one currently stored sequenced row.
type Item struct {
	ID        int64
	ProblemID int64
}

// Placement assigns an item its new 1-based position.
type Placement struct {
	ID       int64
	NewOrder int
}

// ApplyOrder maps every existing item onto its position within desired.
// desired must list each existing item's problem id exactly once; the
// returned placements are then a bijection onto 1..N.
//
// The whole result must be persisted atomically: applying only part of
// it would leave the stored orders duplicated or sparse.
func ApplyOrder(existing []Item, desired []int64) ([]Placement, error) {
	if len(desired) != len(existing) {
		return nil, ErrInvalidOrderLength(len(existing), len(desired))
	}

	position := make(map[int64]int, len(desired))
	for i, problemID := range desired {
		if _, dup := position[problemID]; dup {
			return nil, ErrOrderNotPermutation()
		}
		position[problemID] = i + 1
	}

	placements := make([]Placement, 0, len(existing))
	for _, item := range existing {
		order, ok := position[item.ProblemID]
		if !ok {
			return nil, ErrOrderNotPermutation()
		}
		placements = append(placements, Placement{ID: item.ID, NewOrder: order})
	}
	return placements, nil
}

// OrderedItem is a sequenced row together with its current position.
type OrderedItem struct {
	ID    int64
	Order int
}

// CompactAfterRemoval shifts items that followed a removed position down
// by one, closing the gap so the remaining orders stay a permutation of
// 1..N-1. Only items that actually move are returned.
func CompactAfterRemoval(items []OrderedItem, removedOrder int) []Placement {
	placements := make([]Placement, 0, len(items))
	for _, item := range items {
		if item.Order > removedOrder {
			placements = append(placements, Placement{ID: item.ID, NewOrder: item.Order - 1})
		}
	}
	return placements
}
