package admin

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse carries a freshly issued admin access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
