package domain

// CartItem is a product reference held in a user's cart. Name and unit price
// are cached for display; checkout re-reads the catalog before snapshotting.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}
