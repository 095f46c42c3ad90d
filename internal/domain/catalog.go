package domain

import (
	"encoding/json"
	"fmt"
)

// Catalog is the universe of cards available to be drawn. Cards keep their
// import order; the id index is rebuilt on every replacement. Catalog values
// are immutable: mutating operations return a new Catalog.
//
// Card ids are required to be unique but not actively enforced; a re-import
// whose entries derive colliding ids silently leaves both positions in place
// and Lookup resolves to the first match.
type Catalog struct {
	cards []Card
	byID  map[string]int
}

// NewCatalog builds a catalog from an already-coerced card sequence, for
// example when restoring a persisted snapshot.
func NewCatalog(cards []Card) *Catalog {
	c := &Catalog{cards: cards}
	c.reindex()
	return c
}

// EmptyCatalog returns a catalog with no cards.
func EmptyCatalog() *Catalog {
	return NewCatalog(nil)
}

func (c *Catalog) reindex() {
	c.byID = make(map[string]int, len(c.cards))
	for i, card := range c.cards {
		if _, ok := c.byID[card.ID]; !ok {
			c.byID[card.ID] = i
		}
	}
}

// Cards returns the catalog entries in import order. The returned slice must
// not be mutated by the caller.
func (c *Catalog) Cards() []Card {
	return c.cards
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Lookup returns the card with the given id, or ErrCardNotFound.
func (c *Catalog) Lookup(id string) (Card, error) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, ErrCardNotFound
	}
	return c.cards[i], nil
}

// Update returns a catalog with the entry whose id matches replaced by card.
// When no entry matches, the receiver is returned unchanged.
func (c *Catalog) Update(card Card) *Catalog {
	i, ok := c.byID[card.ID]
	if !ok {
		return c
	}
	cards := make([]Card, len(c.cards))
	copy(cards, c.cards)
	cards[i] = card
	return NewCatalog(cards)
}

// importEntry is the loosely-typed shape of one catalog import record. All
// fields are optional; absent values fall back to empty strings or positional
// placeholders.
type importEntry struct {
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
}

// ReplaceAll coerces a raw import payload into cards and returns a catalog
// holding exactly those cards, replacing the previous contents atomically.
// Returns ErrInvalidImportShape when the payload is not a JSON array.
// Malformed individual entries are coerced to empty records, never rejected:
// an entry with no name gets the placeholder name "Card N" (1-based position)
// and the id "card-<index>" (0-based position); a named entry uses its name
// as id.
func ReplaceAll(raw json.RawMessage) (*Catalog, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrInvalidImportShape
	}

	cards := make([]Card, 0, len(entries))
	for i, rawEntry := range entries {
		var entry importEntry
		// Coercion only: a non-object entry degrades to the zero record.
		_ = json.Unmarshal(rawEntry, &entry)

		card := Card{
			ID:        entry.Name,
			Name:      entry.Name,
			ShortText: entry.ShortDescription,
			LongText:  entry.LongDescription,
		}
		if card.Name == "" {
			card.ID = fmt.Sprintf("card-%d", i)
			card.Name = fmt.Sprintf("Card %d", i+1)
		}
		cards = append(cards, card)
	}

	return NewCatalog(cards), nil
}
