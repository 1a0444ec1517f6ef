package domain

// AccountStatus is the activation state of an account, managed by admins.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// BasicUserInfo is the identity of the signed-in user as reported by the
// backend. The portal only ever holds a per-navigation copy.
type BasicUserInfo struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Role     Role          `json:"role"`
	Status   AccountStatus `json:"status,omitempty"`
}

// Credentials are submitted by the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInfo is the payload of the account_register command.
type RegisterInfo struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// RecoveryMethod selects how a password reset is delivered.
type RecoveryMethod string

const (
	RecoveryByEmail RecoveryMethod = "email"
	RecoveryByPhone RecoveryMethod = "phone"
)

// RecoveryInfo is the payload of the account_recovery command.
type RecoveryInfo struct {
	Username string         `json:"username,omitempty"`
	Method   RecoveryMethod `json:"method"`
	Email    string         `json:"email,omitempty"`
	Phone    string         `json:"phone,omitempty"`
}

// UpdateUserInfo is the payload of the update_user_info command.
type UpdateUserInfo struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// UpdatePasswordInfo is the payload of the update_password command.
type UpdatePasswordInfo struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Settings are the per-session portal preferences.
type Settings struct {
	ServerURL string `json:"server_url"`
}
