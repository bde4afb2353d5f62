package domain

import "time"

// Category is a catalog grouping kept in the relational store.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
