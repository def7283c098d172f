package dto

import "time"

type TeamDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" example:"Night Raiders"`
	Tag         string    `json:"tag,omitempty" example:"NR"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	LeaderID    int       `json:"leaderId"`
	MaxMembers  int       `json:"maxMembers" example:"4"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateTeamRequestDTO struct {
	Name        string `json:"name" validate:"required,min=3,max=30"`
	Tag         string `json:"tag" validate:"max=5"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	MaxMembers  int    `json:"maxMembers"`
}

type UpdateTeamRequestDTO struct {
	Name        *string `json:"name,omitempty"`
	Tag         *string `json:"tag,omitempty"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
}

type TeamMemberDTO struct {
	ID       int       `json:"id"`
	TeamID   int       `json:"teamId"`
	UserID   int       `json:"userId"`
	Role     string    `json:"role" example:"member"`
	JoinedAt time.Time `json:"joinedAt"`
}

type ChangeRoleRequestDTO struct {
	Role string `json:"role" validate:"required,oneof=leader co-leader member"`
}

type InviteUserRequestDTO struct {
	Username string `json:"username" validate:"required"`
}

type UserSummaryDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type TeamInviteDTO struct {
	ID        int             `json:"id"`
	TeamID    int             `json:"teamId"`
	UserID    int             `json:"userId"`
	InvitedBy int             `json:"invitedBy"`
	Status    string          `json:"status" example:"pending"`
	ExpiresAt time.Time       `json:"expiresAt"`
	CreatedAt time.Time       `json:"createdAt"`
	Team      *TeamDTO        `json:"team,omitempty"`
	Inviter   *UserSummaryDTO `json:"inviter,omitempty"`
}

type RespondInviteRequestDTO struct {
	Accept bool `json:"accept"`
}
