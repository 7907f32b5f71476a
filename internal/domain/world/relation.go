package world

type RelationStatus string

const (
	RelationNeutral RelationStatus = "neutral"
	RelationAllied  RelationStatus = "allied"
	RelationWar     RelationStatus = "war"
)

// Relation is the bilateral diplomatic state of one unordered player pair.
// Absence of an entry in the table is equivalent to a Neutral relation.
type Relation struct {
	Status          RelationStatus `json:"status"`
	EstablishedTick int64          `json:"established_tick"`
}

type OfferKind string

const (
	OfferAlliance OfferKind = "alliance"
	OfferPeace    OfferKind = "peace"
)

// PendingOffer tracks an outstanding alliance or peace proposal. Offers live
// in a side table keyed by relation key, never inside the relation record,
// so a rejected or expired offer cannot leak into persisted relation state.
type PendingOffer struct {
	FromPlayerID string    `json:"from_player_id"`
	ToPlayerID   string    `json:"to_player_id"`
	Kind         OfferKind `json:"kind"`
	Tick         int64     `json:"tick"`
}

// RelationKey canonicalizes an unordered player pair so lookups are
// direction-independent.
func RelationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
