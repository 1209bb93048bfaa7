package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before
}

// Mission is a mission definition that can be assigned to users.
type Mission struct {
	ID                int64
	Title             string
	Description       string
	Type              string
	Config            map[string]any
	RewardCash        int
	RewardIcon        string
	RewardXP          int
	RewardDescription string
	GemType           string
	GemSize           string
	CreatedAt         time.Time
}

// Assignment is one mission given to one user.
type Assignment struct {
	ID           int64
	MissionID    int64
	UserID       string
	State        string
	CurrentLevel int
	Notified     bool
	AssignedAt   time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// ProgressRecord is an immutable log entry for one training or test
// submission.
type ProgressRecord struct {
	ID              int64
	AssignmentID    int64
	Sequence        int64
	SessionType     string
	Data            json.RawMessage
	Score           int
	DurationSeconds *int
	CreatedAt       time.Time
}

// Account is a user's reward balance and experience.
type Account struct {
	UserID    string
	Cash      int
	XP        int
	Level     int
	Title     string
	Icon      string
	UpdatedAt time.Time
}

// Transaction is one ledger movement.
type Transaction struct {
	ID          int64
	Sequence    int64
	UserID      string
	Amount      int
	Balance     int
	Description string
	CreatedAt   time.Time
}

// GeneratedHint is an LLM-authored mnemonic for one fact.
type GeneratedHint struct {
	FactKey   string
	Hint      string
	Model     string
	CreatedAt time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// MissionRepo manages mission definitions.
type MissionRepo interface {
	// Create stores m and sets its ID and CreatedAt.
	Create(ctx context.Context, m *Mission) error
	Get(ctx context.Context, id int64) (*Mission, error)
	GetByTitle(ctx context.Context, title string) (*Mission, error)
	List(ctx context.Context) ([]Mission, error)
}

// AssignmentRepo manages mission assignments.
type AssignmentRepo interface {
	// Create stores a and sets its ID.
	Create(ctx context.Context, a *Assignment) error
	Get(ctx context.Context, id int64) (*Assignment, error)
	Find(ctx context.Context, missionID int64, userID string) (*Assignment, error)
	ListByUser(ctx context.Context, userID string) ([]Assignment, error)
	// Update persists the mutable fields: state, level, notified and the
	// timestamps.
	Update(ctx context.Context, a *Assignment) error
	// Unnotified lists the user's assignments not yet shown to them.
	Unnotified(ctx context.Context, userID string) ([]Assignment, error)
	MarkNotified(ctx context.Context, id int64) error
}

// ProgressRepo is the append-only log of training and test submissions.
type ProgressRepo interface {
	// Append stores rec and sets its ID, Sequence and CreatedAt.
	Append(ctx context.Context, rec *ProgressRecord) error
	// List returns the assignment's records newest first.
	List(ctx context.Context, assignmentID int64) ([]ProgressRecord, error)
	// Commit appends rec, when non-nil, and saves a's mutable fields in one
	// transaction. Nothing is written if either fails.
	Commit(ctx context.Context, a *Assignment, rec *ProgressRecord) error
}

// LedgerRepo holds reward balances and their transaction history.
type LedgerRepo interface {
	// Account returns the user's account, or a fresh level 1 account if the
	// user has none yet.
	Account(ctx context.Context, userID string) (*Account, error)
	SaveAccount(ctx context.Context, a *Account) error
	// Credit adds amount to the user's cash and records a transaction.
	Credit(ctx context.Context, userID string, amount int, description string) (*Transaction, error)
	Transactions(ctx context.Context, userID string, limit int) ([]Transaction, error)
}

// HintRepo stores generated mnemonics.
type HintRepo interface {
	// Save inserts or replaces the hint for h.FactKey.
	Save(ctx context.Context, h *GeneratedHint) error
	// Get returns the hint for factKey, or nil if none exists.
	Get(ctx context.Context, factKey string) (*GeneratedHint, error)
	List(ctx context.Context) ([]GeneratedHint, error)
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	// QueryLLMRequests returns LLM request events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
}
