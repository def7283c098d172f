package dto

import "time"

type TransactionDTO struct {
	ID        int       `json:"id" example:"1"`
	Amount    float64   `json:"amount" example:"500"`
	Type      string    `json:"type" example:"deposit"`
	Status    string    `json:"status" example:"completed"`
	Reference string    `json:"reference,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt" example:"2020-12-09T16:09:57+03:00"`
}

type WalletResponseDTO struct {
	Balance      float64          `json:"balance" example:"500.5"`
	Coins        int              `json:"coins" example:"100"`
	Transactions []TransactionDTO `json:"transactions"`
}

type WalletAmountRequestDTO struct {
	Amount float64 `json:"amount" example:"100"`
}

type DepositResponseDTO struct {
	Transaction TransactionDTO `json:"transaction"`
	NewBalance  float64        `json:"newBalance" example:"600.5"`
}

type WithdrawResponseDTO struct {
	Transaction TransactionDTO `json:"transaction"`
	Message     string         `json:"message" example:"Withdrawal request submitted and is pending approval"`
}
