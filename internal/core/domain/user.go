package domain

// Role values enumerated by the backend. Any other value is rejected at
// form validation time.
const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
	RoleNormalUser = "normal_user"
)

// User mirrors the backend's user record as displayed by the dashboards.
// The backend serialises the linked store under a capitalised "Store" key.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
	Store   *Store `json:"Store,omitempty"`
}

// OwnsStore reports whether this user already has a store assigned.
func (u User) OwnsStore() bool { return u.Store != nil }
