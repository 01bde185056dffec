package model

// User is a row of the users table. Password holds either a bcrypt hash or,
// for legacy rows, the plaintext password.
type User struct {
	ID          int64
	Username    string
	Password    string
	Role        string
	DisplayName string
}

type LoginRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	TrustComputer bool   `json:"trust_computer"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token,omitempty"`
	User    *UserInfo `json:"user,omitempty"`
}

type UserInfo struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
