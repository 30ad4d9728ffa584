package domain

// User roles. The external auth service reports roles in upper case
// (CUSTOMER/ADMIN); the gateway adapter normalizes to these values.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the session identity created on login/signup and destroyed on
// logout. Role gates access to the admin endpoints.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
