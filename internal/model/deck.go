package model

type DeckKind string

const (
	DeckFibonacci DeckKind = "fibonacci"
	DeckOrdinal   DeckKind = "ordinal"
)

var deckValues = map[DeckKind][]int{
	DeckFibonacci: {0, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89},
	DeckOrdinal:   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
}

func (k DeckKind) Known() bool {
	_, ok := deckValues[k]
	return ok
}

// Values returns the permitted vote values of the deck, in order.
// The returned slice is a copy.
func (k DeckKind) Values() []int {
	vs, ok := deckValues[k]
	if !ok {
		return nil
	}
	out := make([]int, len(vs))
	copy(out, vs)
	return out
}

func (k DeckKind) Contains(value int) bool {
	for _, v := range deckValues[k] {
		if v == value {
			return true
		}
	}
	return false
}

// KnownValue reports whether value belongs to the union of all decks.
// Vote submission checks against this union, not against the room's
// own deck. Tightening it to the per-room deck would reject values
// clients could previously submit.
func KnownValue(value int) bool {
	for kind := range deckValues {
		if kind.Contains(value) {
			return true
		}
	}
	return false
}
