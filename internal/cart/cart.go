package cart

import (
	"encoding/json"
	"math"
	"strconv"
)

// Item is one product line in a visitor's cart. Price is the unit price
// captured when the item was added, not a live catalog lookup.
type Item struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	Quantity     int     `json:"quantity"`
}

// Cart holds items in insertion order, at most one entry per product ID.
type Cart struct {
	Items []Item
}

// AddItem merges by product ID: an existing entry gets its quantity bumped,
// otherwise the item is appended. Quantity is clamped to at least 1.
func (c *Cart) AddItem(item Item, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	item.Quantity = qty
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the entry with the given ID. Removing an absent ID is a
// no-op.
func (c *Cart) RemoveItem(id int64) {
	for i, it := range c.Items {
		if it.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity clamps to a minimum of 1. Setting zero or less never removes
// the entry; RemoveItem is the only way out of the cart.
func (c *Cart) SetQuantity(id int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems is the sum of quantities, recomputed on every call.
func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity, recomputed on every call.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// storedItem accepts whatever shape a previous version of the site may have
// written; every field is coerced before it is trusted.
type storedItem struct {
	ID           any `json:"id"`
	Name         any `json:"name"`
	Price        any `json:"price"`
	Thumbnail    any `json:"thumbnail"`
	CategoryName any `json:"categoryName"`
	Quantity     any `json:"quantity"`
}

// DecodeItems parses a persisted cart snapshot. Unparsable JSON, a non-array
// payload or an empty input all yield an empty cart. Elements that do not
// coerce to a finite numeric id, a non-empty name and a finite price are
// dropped without error.
func DecodeItems(data []byte) []Item {
	if len(data) == 0 {
		return nil
	}
	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}
	items := make([]Item, 0, len(stored))
	for _, s := range stored {
		id, okID := toNumber(s.ID)
		price, okPrice := toNumber(s.Price)
		name := toString(s.Name)
		if !okID || !okPrice || name == "" {
			continue
		}
		qty := 1
		if q, ok := toNumber(s.Quantity); ok && int(q) > 1 {
			qty = int(q)
		}
		items = append(items, Item{
			ID:           int64(id),
			Name:         name,
			Price:        price,
			Thumbnail:    toString(s.Thumbnail),
			CategoryName: toString(s.CategoryName),
			Quantity:     qty,
		})
	}
	return items
}

// EncodeItems serializes the cart for persistence. A nil slice is written as
// an empty array so hydration of a cleared cart stays well-formed.
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
