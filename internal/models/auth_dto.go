package models

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful /auth/login/ call.
type LoginResponse struct {
	AccessToken  string       `json:"access"`
	RefreshToken string       `json:"refresh"`
	User         *UserSummary `json:"user,omitempty"`
}

type TokenRefreshRequest struct {
	RefreshToken string `json:"refresh"`
}

// TokenRefreshResponse carries a new refresh token only when rotation is
// enabled on the server.
type TokenRefreshResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh,omitempty"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh"`
}
