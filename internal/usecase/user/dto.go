package user

import (
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	"github.com/Ansy5566/ctosaas/internal/domain/task"
	domainUser "github.com/Ansy5566/ctosaas/internal/domain/user"
)

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// UserResponse is the public view of a user; it never carries the password hash.
type UserResponse struct {
	ID           string                     `json:"id"`
	Email        string                     `json:"email"`
	Name         string                     `json:"name"`
	Avatar       *string                    `json:"avatar,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
	Subscription *subscription.Subscription `json:"subscription,omitempty"`
}

type Statistics struct {
	TotalProducts      int                   `json:"totalProducts"`
	TotalTasks         int                   `json:"totalTasks"`
	CompletedTasks     int                   `json:"completedTasks"`
	FailedTasks        int                   `json:"failedTasks"`
	ProductsByPlatform map[task.Platform]int `json:"productsByPlatform"`
	RecentTasks        []*task.Task          `json:"recentTasks"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Subscription: u.Subscription,
	}
}
