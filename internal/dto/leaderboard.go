package dto

import "time"

type LeaderboardEntryDTO struct {
	UserID          int       `json:"userId"`
	Kills           int       `json:"kills" example:"42"`
	Wins            int       `json:"wins" example:"7"`
	Earnings        float64   `json:"earnings" example:"3500"`
	TournamentCount int       `json:"tournamentCount" example:"12"`
	Period          string    `json:"period" example:"weekly"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type StatsResponseDTO struct {
	TotalPrizePool   float64 `json:"totalPrizePool" example:"28500"`
	ActivePlayers    int     `json:"activePlayers" example:"1200"`
	DailyTournaments int     `json:"dailyTournaments" example:"4"`
	YesterdayPayout  float64 `json:"yesterdayPayout" example:"15000"`
}
