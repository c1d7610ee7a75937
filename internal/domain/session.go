package domain

// Role identifies the authenticated user's role
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the identity record returned by the accounts API
type User struct {
	Slug      string `json:"slug"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// Session holds the client-side authentication state.
//
// Invariant: AccessToken empty implies User nil; the logged-out state is
// all-or-nothing.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
	Role         Role   `json:"role,omitempty"`
}

// IsAuthenticated reports whether an access token is present
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// Claims is the identity information carried inside the access token
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
