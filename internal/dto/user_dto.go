package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Affiliation string    `json:"affiliation,omitempty"`
	AboutMe     string    `json:"about_me,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"full_name" validate:"required,min=3"`
	Affiliation string `json:"affiliation" validate:"omitempty,max=255"`
	AboutMe     string `json:"about_me" validate:"omitempty,max=2000"`
}

type UploadAvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
