package cache

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stockquest/api-server/pkg/kvstore"
)

// CacheService loads store-backed rows into the KV mirror on a miss. The
// mirror is a display-layer convenience; the table stays the source of
// truth.
type CacheService struct {
	DB *gorm.DB
	KV kvstore.KVStore
}

func New(db *gorm.DB, kv kvstore.KVStore) *CacheService {
	return &CacheService{
		DB: db,
		KV: kv,
	}
}

// LoadUserBalance reads the balance from the users table and mirrors it
// under balance_<user_id>.
func (c *CacheService) LoadUserBalance(userID int) (float64, error) {
	var balance float64
	err := c.DB.Table("users").Select("balance").Where("user_id = ?", userID).Scan(&balance).Error
	if err != nil {
		return 0, err
	}

	key := fmt.Sprintf("balance_%d", userID)
	if err := c.KV.Set(key, fmt.Sprintf("%.2f", balance)); err != nil {
		return 0, err
	}

	return balance, nil
}
