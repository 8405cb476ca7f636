package dto

import (
	"time"

	"github.com/yukikurage/worklog-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        models.UserID `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      models.Role   `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
}

// OwnerDTO is the short owner summary embedded in reports
type OwnerDTO struct {
	ID    models.UserID `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
}

// LoginResponse carries the user and a bearer token for API clients
type LoginResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}
