package models

import "time"

// CartItem is a line item; a cart holds at most one item per product ID.
type CartItem struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
	Qty   int     `bson:"qty" json:"qty"`
	Image string  `bson:"image" json:"image"`
}

// Cart is keyed by the owner's user ID
type Cart struct {
	UserID    string     `bson:"_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// Total sums price*qty over all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// EffectiveQty treats a missing or zero quantity as one.
func (i CartItem) EffectiveQty() int {
	if i.Qty < 1 {
		return 1
	}
	return i.Qty
}
