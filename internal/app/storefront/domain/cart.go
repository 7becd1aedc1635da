package domain

// CartItem is a line of the cart or the preorder slot. ID is the variant id.
type CartItem struct {
	ID             string   `json:"_id"`
	ProductID      string   `json:"productId"`
	Name           string   `json:"name"`
	Price          Money    `json:"price"`
	SellingPrice   Money    `json:"sellingPrice"`
	Image          string   `json:"image,omitempty"`
	Quantity       int      `json:"quantity"`
	MaxStock       int      `json:"maxStock"`
	Currency       string   `json:"currency,omitempty"`
	VariantValues  []string `json:"variantValues,omitempty"`
	DiscountActive bool     `json:"isDiscountActive"`
	PreOrder       bool     `json:"isPreOrder"`
}

// LineTotal is Price × Quantity.
func (i CartItem) LineTotal() Money {
	return i.Price.Times(i.Quantity)
}

// clamp keeps the quantity inside [1, MaxStock]. Preorder lines without a
// known stock have no ceiling.
func (i CartItem) clamp(qty int) int {
	if qty < 1 {
		qty = 1
	}
	if i.MaxStock >= 1 && qty > i.MaxStock {
		qty = i.MaxStock
	}
	return qty
}

// Cart is the per-session shopping state: regular items plus at most one
// preorder item.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	Preorder  *CartItem  `json:"preorder,omitempty"`
	Version   int64      `json:"version"`
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Items: []CartItem{}}
}

// Add puts item in the cart, merging with an existing line of the same
// variant. The resulting quantity is clamped to the stock ceiling.
func (c *Cart) Add(item CartItem) error {
	if item.MaxStock < 1 {
		return ErrOutOfStock
	}
	item.PreOrder = false

	for idx := range c.Items {
		line := &c.Items[idx]
		if line.ID != item.ID {
			continue
		}
		merged := line.Quantity + max(item.Quantity, 1)
		*line = item
		line.Quantity = item.clamp(merged)
		return nil
	}

	item.Quantity = item.clamp(item.Quantity)
	c.Items = append(c.Items, item)
	return nil
}

// AddPreorder fills the preorder slot. The slot holds one item and can only
// be filled while the regular cart is empty.
func (c *Cart) AddPreorder(item CartItem) error {
	if c.Preorder != nil {
		return ErrPreorderSlotTaken
	}
	if len(c.Items) > 0 {
		return ErrCartNotEmpty
	}
	item.PreOrder = true
	item.Quantity = item.clamp(item.Quantity)
	c.Preorder = &item
	return nil
}

// UpdateQuantity sets the quantity of the line with id, clamped to its
// stock ceiling. The preorder slot is addressed by its item id too.
func (c *Cart) UpdateQuantity(id string, qty int) error {
	if c.Preorder != nil && c.Preorder.ID == id {
		c.Preorder.Quantity = c.Preorder.clamp(qty)
		return nil
	}
	for idx := range c.Items {
		if c.Items[idx].ID == id {
			c.Items[idx].Quantity = c.Items[idx].clamp(qty)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// Remove drops the line with id, or empties the preorder slot.
func (c *Cart) Remove(id string) error {
	if c.Preorder != nil && c.Preorder.ID == id {
		c.Preorder = nil
		return nil
	}
	for idx := range c.Items {
		if c.Items[idx].ID == id {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// Clear empties both the cart and the preorder slot.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Preorder = nil
}

// ClearActive empties whatever Active would return: the preorder slot when
// it is in use, the regular items otherwise.
func (c *Cart) ClearActive() {
	if _, preorder := c.Active(); preorder {
		c.Preorder = nil
		return
	}
	c.Items = []CartItem{}
}

// Active returns the lines a checkout would buy. A held preorder wins over
// the regular cart.
func (c *Cart) Active() (items []CartItem, preorder bool) {
	if c.Preorder != nil && c.Preorder.Quantity > 0 {
		return []CartItem{*c.Preorder}, true
	}
	return c.Items, false
}

// IsEmpty reports whether there is nothing to check out.
func (c *Cart) IsEmpty() bool {
	items, _ := c.Active()
	return len(items) == 0
}

// Subtotal sums the active lines.
func (c *Cart) Subtotal() Money {
	items, _ := c.Active()
	return Subtotal(items)
}

// Subtotal sums LineTotal over items.
func Subtotal(items []CartItem) Money {
	total := Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
