package dto

// CartAddRequest payload for adding a product to the cart.
type CartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartUpdateRequest payload for changing an item quantity.
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// CategoryCreateRequest payload for new catalog categories.
type CategoryCreateRequest struct {
	Name string `json:"name"`
}
