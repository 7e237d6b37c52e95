package subscription

import "fmt"

const (
	// MinItemQuantity and MaxItemQuantity bound a single line item.
	MinItemQuantity = 1
	MaxItemQuantity = 100
)

// Item is one (product, quantity) line of a subscription. Order is
// significant: it is preserved through persistence and onto generated orders.
type Item struct {
	ProductSID string
	Quantity   int
}

func NewItem(productSID string, quantity int) (Item, error) {
	if productSID == "" {
		return Item{}, fmt.Errorf("product SID is required")
	}
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return Item{}, fmt.Errorf("quantity must be between %d and %d, got %d", MinItemQuantity, MaxItemQuantity, quantity)
	}
	return Item{ProductSID: productSID, Quantity: quantity}, nil
}

// validateItems checks the full item list: non-empty, bounded quantities,
// no duplicate products.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("at least one item is required")
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ProductSID == "" {
			return fmt.Errorf("product SID is required")
		}
		if item.Quantity < MinItemQuantity || item.Quantity > MaxItemQuantity {
			return fmt.Errorf("quantity for product %s must be between %d and %d, got %d",
				item.ProductSID, MinItemQuantity, MaxItemQuantity, item.Quantity)
		}
		if seen[item.ProductSID] {
			return fmt.Errorf("duplicate product %s in items", item.ProductSID)
		}
		seen[item.ProductSID] = true
	}
	return nil
}
