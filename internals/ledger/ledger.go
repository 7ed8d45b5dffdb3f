package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stockquest/api-server/internals/team"
	"github.com/stockquest/api-server/pkg/kvstore"
)

var (
	ErrIncompleteTeam      = errors.New("team needs at least 5 stocks, a captain and a vice-captain")
	ErrInsufficientFunds   = errors.New("insufficient balance for this team")
	ErrDuplicateSubmission = errors.New("this submission was already recorded")
	ErrSubmissionInFlight  = errors.New("a submission is already in progress")
	ErrPortfolioNotFound   = errors.New("portfolio not found")
)

// How long the per-user in-flight lock sticks around if the process dies
// mid-submission. The DB transaction itself is what guarantees atomicity;
// the lock only absorbs double clicks.
const submitLockTTL = 10 * time.Second

type LedgerService struct {
	KV    kvstore.KVStore
	Store Store
}

func New(kv kvstore.KVStore, store Store) *LedgerService {
	return &LedgerService{
		KV:    kv,
		Store: store,
	}
}

// Submit turns a ready selection into a persisted portfolio, debits the
// user's balance and seeds a leaderboard entry, all in one transaction.
// submissionID is the caller's idempotency key; replaying it yields the
// original outcome instead of a second portfolio. On success the selection
// is cleared back to empty.
func (ls *LedgerService) Submit(userID int, sel *team.Selection, submissionID string) (*Portfolio, error) {
	if sel.State() != team.StateReady {
		return nil, ErrIncompleteTeam
	}

	balance, err := ls.Store.Balance(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching balance: %w", err)
	}

	cost := sel.TotalCost()
	if cost > balance {
		return nil, ErrInsufficientFunds
	}

	lockKey := "submit_lock_" + strconv.Itoa(userID)
	acquired, err := ls.KV.SetNX(lockKey, "1", submitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring submit lock: %w", err)
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer ls.KV.Delete(lockKey)

	if submissionID == "" {
		submissionID = uuid.NewString()
	}

	p := &Portfolio{
		ID:             uuid.NewString(),
		UserID:         userID,
		SubmissionID:   submissionID,
		Captain:        sel.Captain(),
		ViceCaptain:    sel.ViceCaptain(),
		InvestedAmount: cost,
		CurrentValue:   cost,
		Points:         0,
		Status:         StatusActive,
		CreatedAt:      time.Now(),
	}
	for _, q := range sel.Stocks() {
		p.Stocks = append(p.Stocks, PortfolioStock{
			Symbol:   q.Symbol,
			Name:     q.Name,
			Price:    q.Price,
			Quantity: team.LotSize,
		})
	}

	if err := ls.Store.SubmitPortfolio(p); err != nil {
		// the selection is untouched on any failure so the user can retry
		return nil, err
	}

	// refresh the mirrored balance; the table is the source of truth, a
	// failed cache write just means the next read re-loads it
	_ = ls.KV.Set("balance_"+strconv.Itoa(userID), fmt.Sprintf("%.2f", balance-cost))

	sel.Clear()
	return p, nil
}

func (ls *LedgerService) DeletePortfolio(userID int, portfolioID string) error {
	return ls.Store.DeletePortfolio(userID, portfolioID)
}
