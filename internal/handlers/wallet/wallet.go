package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/dto"
	"github.com/firestorm-arena/firestorm/internal/service/walletservice"
	"github.com/firestorm-arena/firestorm/pkg/auth"
	"github.com/firestorm-arena/firestorm/pkg/utils"
)

type Service interface {
	GetWallet(ctx context.Context, userID int) (*domain.User, []domain.Transaction, error)
	Deposit(ctx context.Context, userID int, amount float64) (*domain.Transaction, float64, error)
	RequestWithdrawal(ctx context.Context, userID int, amount float64) (*domain.Transaction, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func toTransactionDTO(tx domain.Transaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Type:      tx.Type,
		Status:    tx.Status,
		Reference: tx.Reference,
		Details:   tx.Details,
		CreatedAt: tx.CreatedAt,
	}
}

// GetWallet godoc
//
//	@Summary		Get wallet
//	@Description	Current balance, coins and the full transaction history, newest first.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WalletResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet [get]
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	user, transactions, err := h.walletService.GetWallet(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := dto.WalletResponseDTO{
		Balance:      user.Balance,
		Coins:        user.Coins,
		Transactions: make([]dto.TransactionDTO, len(transactions)),
	}
	for i, tx := range transactions {
		response.Transactions[i] = toTransactionDTO(tx)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Deposit godoc
//
//	@Summary		Deposit funds
//	@Description	Credit the wallet. The deposit settles immediately and the new balance is returned.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WalletAmountRequestDTO	true	"Deposit amount"
//	@Success		200		{object}	dto.DepositResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/deposit [post]
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WalletAmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}

	tx, newBalance, err := h.walletService.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DepositResponseDTO{
		Transaction: toTransactionDTO(*tx),
		NewBalance:  newBalance,
	})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Create a pending withdrawal. The balance is not debited until the payout system approves it.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WalletAmountRequestDTO	true	"Withdrawal amount"
//	@Success		200		{object}	dto.WithdrawResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WalletAmountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}

	tx, err := h.walletService.RequestWithdrawal(r.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawResponseDTO{
		Transaction: toTransactionDTO(*tx),
		Message:     "Withdrawal request submitted and is pending approval",
	})
}
