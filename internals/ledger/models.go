package ledger

import "time"

// Portfolio is a finalized team submission. CurrentValue and Points are
// rewritten later by the external scoring pipeline; everything else is fixed
// at submission time.
type Portfolio struct {
	ID             string    `json:"id" gorm:"column:id;primaryKey"`
	UserID         int       `json:"user_id" gorm:"column:user_id;not null"`
	SubmissionID   string    `json:"submission_id" gorm:"column:submission_id;uniqueIndex;not null"`
	Captain        string    `json:"captain" gorm:"column:captain;not null"`
	ViceCaptain    string    `json:"vice_captain" gorm:"column:vice_captain;not null"`
	InvestedAmount float64   `json:"invested_amount" gorm:"column:invested_amount;not null"`
	CurrentValue   float64   `json:"current_value" gorm:"column:current_value;not null"`
	Points         float64   `json:"points" gorm:"column:points;not null"`
	Status         string    `json:"status" gorm:"column:status;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`

	Stocks []PortfolioStock `json:"stocks" gorm:"foreignKey:PortfolioID"`
}

type PortfolioStock struct {
	ID          int     `json:"-" gorm:"column:id;primaryKey;autoIncrement"`
	PortfolioID string  `json:"-" gorm:"column:portfolio_id;index;not null"`
	Symbol      string  `json:"symbol" gorm:"column:symbol;not null"`
	Name        string  `json:"name" gorm:"column:name;not null"`
	Price       float64 `json:"price" gorm:"column:price;not null"`
	Quantity    int     `json:"quantity" gorm:"column:quantity;not null"`
}

func (Portfolio) TableName() string      { return "portfolios" }
func (PortfolioStock) TableName() string { return "portfolio_stocks" }

const StatusActive = "active"
