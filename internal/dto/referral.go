package dto

import "time"

type ReferralDTO struct {
	ID         int       `json:"id"`
	ReferrerID int       `json:"referrerId"`
	ReferredID int       `json:"referredId"`
	Status     string    `json:"status" example:"completed"`
	Reward     float64   `json:"reward" example:"50"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReferralsResponseDTO struct {
	ReferralCode string        `json:"referralCode" example:"2377225624"`
	Referrals    []ReferralDTO `json:"referrals"`
}

type ApplyReferralRequestDTO struct {
	ReferralCode string `json:"referralCode" validate:"required"`
}

type ApplyReferralResponseDTO struct {
	Message  string      `json:"message"`
	Referral ReferralDTO `json:"referral"`
}
