package dto

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"jaeho"`
	Email    string `json:"email" binding:"required,email" example:"jaeho@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"correct-horse"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jaeho"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// RefreshTokenRequest is the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType" example:"Bearer"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
}
