// FILE: internal/dto/user_dto.go
package dto

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=3"`
	// Password is optional; a random temporary one is generated when empty.
	Password   string `json:"password" validate:"omitempty,min=8"`
	Role       string `json:"role" validate:"required,oneof=user admin"`
	SendInvite bool   `json:"send_invite"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=3"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	Status   string `json:"status" validate:"omitempty,oneof=active blocked"`
	Password string `json:"password" validate:"omitempty,min=8"`
}
