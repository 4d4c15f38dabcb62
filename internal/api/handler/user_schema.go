package handler

import "github.com/passport-hq/passport-api/internal/core/domain"

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	FullName string `json:"full_name" validate:"omitempty,max=128"`
}

type updateUserRequest struct {
	Email        *string `json:"email" validate:"omitempty,email"`
	FullName     *string `json:"full_name"`
	IsActive     *bool   `json:"is_active"`
	IsVerified   *bool   `json:"is_verified"`
	AvatarURL    *string `json:"avatar_url"`
	PhoneNumber  *string `json:"phone_number"`
	AuthProvider *string `json:"auth_provider"`
	Locale       *string `json:"locale"`
	Timezone     *string `json:"timezone"`
}

type setRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

type changePasswordRequest struct {
	PreviousPassword string `json:"previous_password" validate:"required"`
	NewPassword      string `json:"new_password" validate:"required,min=4"`
}

type userListResponse struct {
	Data  []domain.User `json:"data"`
	Total int64         `json:"total"`
}
