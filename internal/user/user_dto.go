package user

// CreateUserRequest is the admin provisioning body. AdminEmail is what the old
// clients send to identify the acting admin; authorization now comes from the
// session token and the field is accepted but ignored.
type CreateUserRequest struct {
	NewUsername string `json:"newUsername" binding:"required"`
	NewEmail    string `json:"newEmail" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=4"`
	NewRole     string `json:"newRole"`
	AdminEmail  string `json:"adminEmail"`
}

type CreateUserResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// PublicUser is the account projection returned to clients; it never carries
// the password hash or a pending OTP.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ToPublic(u *User) PublicUser {
	return PublicUser{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
