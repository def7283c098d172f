package domain

import "time"

// Transaction types and the direction they move a user's balance.
const (
	TxTypeDeposit         = "deposit"
	TxTypeWithdrawal      = "withdrawal"
	TxTypeTournamentEntry = "tournament_entry"
	TxTypeTournamentWin   = "tournament_win"
	TxTypeReferral        = "referral"

	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// Tournament and participant lifecycle statuses.
const (
	TournamentUpcoming  = "upcoming"
	TournamentOngoing   = "ongoing"
	TournamentCompleted = "completed"

	ParticipantRegistered = "registered"
	ParticipantPlayed     = "played"
	ParticipantEliminated = "eliminated"
	ParticipantCompleted  = "completed"
)

// Team member roles and invite statuses.
const (
	RoleLeader   = "leader"
	RoleCoLeader = "co-leader"
	RoleMember   = "member"

	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
	InviteExpired  = "expired"
)

// Chat room kinds.
const (
	RoomGlobal     = "global"
	RoomTeam       = "team"
	RoomTournament = "tournament"
)

type User struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	GameUID      string    `db:"game_uid"`
	Avatar       string    `db:"avatar"`
	Balance      float64   `db:"balance"`
	Coins        int       `db:"coins"`
	ReferralCode string    `db:"referral_code"`
	ReferredBy   *int      `db:"referred_by"`
	TeamID       *int      `db:"team_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type Tournament struct {
	ID            int       `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	StartTime     time.Time `db:"start_time"`
	EntryFee      float64   `db:"entry_fee"`
	PrizePool     float64   `db:"prize_pool"`
	PerKillReward float64   `db:"per_kill_reward"`
	MaxPlayers    int       `db:"max_players"`
	Mode          string    `db:"mode"`
	Map           string    `db:"map"`
	Status        string    `db:"status"`
	Rules         string    `db:"rules"`
	Image         string    `db:"image"`
	RoomID        string    `db:"room_id"`
	RoomPassword  string    `db:"room_password"`
	OrganizerID   *int      `db:"organizer_id"`
	CreatedAt     time.Time `db:"created_at"`
}

type TournamentParticipant struct {
	ID           int       `db:"id"`
	TournamentID int       `db:"tournament_id"`
	UserID       int       `db:"user_id"`
	TeamID       *int      `db:"team_id"`
	Kills        int       `db:"kills"`
	Rank         *int      `db:"rank"`
	Status       string    `db:"status"`
	JoinedAt     time.Time `db:"joined_at"`
}

// Transaction rows are immutable once created except for the pending ->
// completed/failed settlement transition on withdrawals. Amount is always
// positive; Type decides the sign of the balance effect.
type Transaction struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Amount    float64   `db:"amount"`
	Type      string    `db:"type"`
	Status    string    `db:"status"`
	Reference string    `db:"reference"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}

// LeaderboardEntry is a per (user, period) aggregate, one row per pair.
type LeaderboardEntry struct {
	ID              int       `db:"id"`
	UserID          int       `db:"user_id"`
	Kills           int       `db:"kills"`
	Wins            int       `db:"wins"`
	Earnings        float64   `db:"earnings"`
	TournamentCount int       `db:"tournament_count"`
	Period          string    `db:"period"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type Referral struct {
	ID         int       `db:"id"`
	ReferrerID int       `db:"referrer_id"`
	ReferredID int       `db:"referred_id"`
	Status     string    `db:"status"`
	Reward     float64   `db:"reward"`
	CreatedAt  time.Time `db:"created_at"`
}

type Team struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Tag         string    `db:"tag"`
	Description string    `db:"description"`
	Logo        string    `db:"logo"`
	LeaderID    int       `db:"leader_id"`
	MaxMembers  int       `db:"max_members"`
	CreatedAt   time.Time `db:"created_at"`
}

type TeamMember struct {
	ID       int       `db:"id"`
	TeamID   int       `db:"team_id"`
	UserID   int       `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

type TeamInvite struct {
	ID        int       `db:"id"`
	TeamID    int       `db:"team_id"`
	UserID    int       `db:"user_id"`
	InvitedBy int       `db:"invited_by"`
	Status    string    `db:"status"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// ChatRoom.Type is "global", "team" or "tournament"; RelatedID points at the
// team or tournament for the scoped kinds.
type ChatRoom struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	RelatedID *int      `db:"related_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ChatMessage struct {
	ID         int       `db:"id"`
	RoomID     int       `db:"room_id"`
	UserID     int       `db:"user_id"`
	Message    string    `db:"message"`
	Attachment string    `db:"attachment"`
	CreatedAt  time.Time `db:"created_at"`
}

type MarketplaceItem struct {
	ID          int       `db:"id"`
	SellerID    int       `db:"seller_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Price       float64   `db:"price"`
	Image       string    `db:"image"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}
