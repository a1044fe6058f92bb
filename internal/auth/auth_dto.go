package auth

import "go-intranet/internal/user"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse tells the caller whether the code went out by mail; when it
// did not, the code is in the operational log and login can still proceed.
type LoginResponse struct {
	Message      string `json:"message"`
	Role         string `json:"role"`
	OTPDelivered bool   `json:"otpDelivered"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type VerifyOTPResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    user.PublicUser `json:"user"`
}
