package dto

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token alongside the user profile.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
