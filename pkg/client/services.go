package client

import (
	"context"
	"net/http"
	"time"
)

// Wire types mirroring the server's JSON responses.

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type authEnvelope struct {
	Data struct {
		User User `json:"user"`
		Auth struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expires_at"`
		} `json:"auth"`
	} `json:"data"`
}

// Login authenticates against the server and, on success, performs the
// session's Login transition with the issued credential.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var envelope authEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &envelope)
	if err != nil {
		return nil, err
	}
	user := envelope.Data.User
	principal := Principal{SubjectID: user.ID, Roles: []string{user.Role}}
	if err := c.session.Login(principal, envelope.Data.Auth.Token); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and logs the session in with the issued
// credential.
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	var envelope authEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, &envelope)
	if err != nil {
		return nil, err
	}
	user := envelope.Data.User
	principal := Principal{SubjectID: user.ID, Roles: []string{user.Role}}
	if err := c.session.Login(principal, envelope.Data.Auth.Token); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session. Stateless credentials need no server call.
func (c *Client) Logout() error {
	return c.session.Logout()
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var envelope struct {
		Data struct {
			Products []Product `json:"products"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Products, nil
}

// Product fetches a single catalog entry.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var envelope struct {
		Data struct {
			Product Product `json:"product"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data.Product, nil
}

// Orders lists every order (manager/admin view).
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var envelope struct {
		Data struct {
			Orders []Order `json:"orders"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Orders, nil
}

// MyOrders lists the caller's own orders.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var envelope struct {
		Data struct {
			Orders []Order `json:"orders"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/mine", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Orders, nil
}

// PlaceOrder checks out the caller's cart.
func (c *Client) PlaceOrder(ctx context.Context) (*Order, error) {
	var envelope struct {
		Data struct {
			Order Order `json:"order"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data.Order, nil
}

// UpdateOrderStatus moves an order to a new lifecycle state.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	var envelope struct {
		Data struct {
			Order Order `json:"order"`
		} `json:"data"`
	}
	err := c.do(ctx, http.MethodPut, "/api/orders/"+id+"/status",
		map[string]string{"status": status}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data.Order, nil
}

// Users lists registered users (manager/admin view).
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var envelope struct {
		Data struct {
			Users []User `json:"users"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Users, nil
}

// UpdateUserRole assigns a role to a user (admin only).
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (*User, error) {
	var envelope struct {
		Data struct {
			User User `json:"user"`
		} `json:"data"`
	}
	err := c.do(ctx, http.MethodPut, "/api/users/"+id+"/role",
		map[string]string{"role": role}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data.User, nil
}

// Cart returns the caller's cart.
func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	var envelope struct {
		Data struct {
			Items []CartItem `json:"items"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Items, nil
}

// AddToCart puts a product into the caller's cart.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (*CartItem, error) {
	var envelope struct {
		Data struct {
			Item CartItem `json:"item"`
		} `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/api/cart/items",
		map[string]any{"productId": productID, "quantity": quantity}, &envelope)
	if err != nil {
		return nil, err
	}
	return &envelope.Data.Item, nil
}

// RemoveFromCart deletes an item from the caller's cart.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/items/"+productID, nil, nil)
}

// Categories lists catalog categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var envelope struct {
		Data struct {
			Categories []Category `json:"categories"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Categories, nil
}
