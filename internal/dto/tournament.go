package dto

import "time"

type TournamentDTO struct {
	ID            int       `json:"id" example:"1"`
	Name          string    `json:"name" example:"FireStorm Solo Championship"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"startTime"`
	EntryFee      float64   `json:"entryFee" example:"50"`
	PrizePool     float64   `json:"prizePool" example:"5000"`
	PerKillReward float64   `json:"perKillReward" example:"20"`
	MaxPlayers    int       `json:"maxPlayers" example:"100"`
	Mode          string    `json:"mode" example:"solo"`
	Map           string    `json:"map" example:"Bermuda"`
	Status        string    `json:"status" example:"upcoming"`
	Rules         string    `json:"rules,omitempty"`
	Image         string    `json:"image,omitempty"`
	RoomID        string    `json:"roomId,omitempty"`
	RoomPassword  string    `json:"roomPassword,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreateTournamentRequestDTO struct {
	Name          string    `json:"name" validate:"required"`
	Description   string    `json:"description"`
	StartTime     time.Time `json:"startTime" validate:"required"`
	EntryFee      float64   `json:"entryFee"`
	PrizePool     float64   `json:"prizePool" validate:"required"`
	PerKillReward float64   `json:"perKillReward"`
	MaxPlayers    int       `json:"maxPlayers" validate:"required,min=2"`
	Mode          string    `json:"mode" validate:"required,oneof=solo duo squad"`
	Map           string    `json:"map" validate:"required"`
	Rules         string    `json:"rules"`
	Image         string    `json:"image"`
	RoomID        string    `json:"roomId"`
	RoomPassword  string    `json:"roomPassword"`
}

type ParticipantDTO struct {
	ID           int       `json:"id"`
	TournamentID int       `json:"tournamentId"`
	UserID       int       `json:"userId"`
	TeamID       *int      `json:"teamId,omitempty"`
	Kills        int       `json:"kills"`
	Rank         *int      `json:"rank,omitempty"`
	Status       string    `json:"status" example:"registered"`
	JoinedAt     time.Time `json:"joinedAt"`
}

type MessageResponseDTO struct {
	Message string `json:"message"`
}
