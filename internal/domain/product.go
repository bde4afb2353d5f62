package domain

import "time"

// Product is the catalog aggregate stored in the document store.
type Product struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Price       float64   `json:"price" dynamodbav:"price"`
	ImageURL    string    `json:"imageUrl,omitempty" dynamodbav:"image_url,omitempty"`
	Category    string    `json:"category,omitempty" dynamodbav:"category,omitempty"`
	Stock       int       `json:"stock" dynamodbav:"stock"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}
