package domain

// Credentials holds the account fields shared by any authenticated actor.
// The password is kept exactly as entered; see DESIGN.md for the plaintext
// storage caveat inherited from the persisted file format.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client is a registered customer able to place orders.
type Client struct {
	ID int64 `json:"id"`
	Credentials
	DeliveryAddress string `json:"delivery_address"`
	PhoneNumber     string `json:"phone_number"`

	// OrderHistory lists the IDs of orders placed during this session, in
	// placement order. Informational only: each Order record is authoritative
	// for its own ClientID. The history is not persisted.
	OrderHistory []int64 `json:"order_history,omitempty"`
}
