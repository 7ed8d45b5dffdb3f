package watchlist

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAlreadyWatched = errors.New("stock is already in the watchlist")
	ErrSymbolRequired = errors.New("symbol is required")
	ErrEntryNotFound  = errors.New("stock is not in the watchlist")
)

type Entry struct {
	ID        int       `json:"-" gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int       `json:"-" gorm:"column:user_id;index;not null"`
	Symbol    string    `json:"symbol" gorm:"column:symbol;not null"`
	Name      string    `json:"name" gorm:"column:name"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Entry) TableName() string { return "watchlist" }

type WatchlistService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *WatchlistService {
	return &WatchlistService{DB: db}
}

func (ws *WatchlistService) List(userID int) ([]Entry, error) {
	entries := make([]Entry, 0)
	err := ws.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (ws *WatchlistService) Add(userID int, symbol, name string) error {
	if symbol == "" {
		return ErrSymbolRequired
	}

	var count int64
	err := ws.DB.Model(&Entry{}).Where("user_id = ? AND symbol = ?", userID, symbol).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyWatched
	}

	return ws.DB.Create(&Entry{
		UserID:    userID,
		Symbol:    symbol,
		Name:      name,
		CreatedAt: time.Now(),
	}).Error
}

func (ws *WatchlistService) Remove(userID int, symbol string) error {
	res := ws.DB.Where("user_id = ? AND symbol = ?", userID, symbol).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
