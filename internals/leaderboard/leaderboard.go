package leaderboard

import (
	"gorm.io/gorm"

	"github.com/stockquest/api-server/pkg/kvstore"
)

type Leaderboard struct {
	KVStore kvstore.KVStore
	DB      *gorm.DB
}

type Entry struct {
	Rank     int     `json:"rank" gorm:"-"`
	UserID   int     `json:"user_id"`
	UserName string  `json:"user_name"`
	Points   float64 `json:"points"`
}

func New(kv kvstore.KVStore, db *gorm.DB) *Leaderboard {
	return &Leaderboard{
		KVStore: kv,
		DB:      db,
	}
}

// GetLeaderboard returns entries ranked by points descending. Ties share
// the order the database returns them in; ranks stay dense.
func (l *Leaderboard) GetLeaderboard(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	entries := make([]Entry, 0, limit)
	err := l.DB.Raw(
		`SELECT lb.user_id, u.user_name, lb.points
		 FROM leaderboard lb JOIN users u ON u.user_id = lb.user_id
		 ORDER BY lb.points DESC LIMIT ?`, limit,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
