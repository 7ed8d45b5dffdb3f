package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Store is the persistence surface the ledger needs. SubmitPortfolio must be
// atomic: either the portfolio exists, the balance is debited and the
// leaderboard row is present, or none of it happened.
type Store interface {
	Balance(userID int) (float64, error)
	SubmitPortfolio(p *Portfolio) error
	DeletePortfolio(userID int, portfolioID string) error
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Balance(userID int) (float64, error) {
	var balance float64
	err := s.DB.Table("users").Select("balance").Where("user_id = ?", userID).Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// SubmitPortfolio performs the three ledger writes in a single Postgres
// transaction. The portfolio insert goes first so a replayed submission_id
// trips the unique index before any balance movement.
func (s *GormStore) SubmitPortfolio(p *Portfolio) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSubmission
			}
			return err
		}

		res := tx.Exec(
			"UPDATE users SET balance = balance - ? WHERE user_id = ? AND balance >= ?",
			p.InvestedAmount, p.UserID, p.InvestedAmount,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		return tx.Exec(
			`INSERT INTO leaderboard (user_id, points, updated_at) VALUES (?, 0, ?)
			 ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at`,
			p.UserID, time.Now(),
		).Error
	})
}

func (s *GormStore) DeletePortfolio(userID int, portfolioID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM portfolios WHERE id = ? AND user_id = ?", portfolioID, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPortfolioNotFound
		}
		return tx.Exec("DELETE FROM portfolio_stocks WHERE portfolio_id = ?", portfolioID).Error
	})
}
