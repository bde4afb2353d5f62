package dto

// ProductCreateRequest payload for catalog creation. Price and stock are
// pointers so absent fields are distinguishable from zero values.
type ProductCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock"`
}

// ProductUpdateRequest payload for partial catalog updates.
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
}
