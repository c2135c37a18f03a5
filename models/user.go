package models

// Address is embedded in orders as the shipping destination.
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
}

// LoginRequest is the body of POST /api/Auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// MigrateRequest is the body of POST /api/Cart/migrate. SessionID is the
// GUID portion of the anonymous session id, without the "session_" prefix.
type MigrateRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// AddItemRequest is the body of POST /api/Cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Flavor    string `json:"flavor,omitempty"`
	Size      string `json:"size,omitempty"`
}

// UpdateItemRequest is the body of PUT /api/Cart/items/:product_id.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ErrorResponse is the business-rule failure body. Clients tell business
// failures from transport failures by the presence of Errors.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}
