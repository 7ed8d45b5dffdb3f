package auth

// Users table structure. Balance is the virtual cash ledger account,
// seeded at signup.
type Users struct {
	UserID     int     `json:"user_id" gorm:"primaryKey;autoIncrement;not null"`
	UserName   string  `json:"user_name" gorm:"not null"`
	Password   string  `json:"-" gorm:"not null"`
	MailID     string  `json:"mail_id" gorm:"not null"`
	ProfilePic string  `json:"profile_pic"`
	Balance    float64 `json:"balance" gorm:"not null"`
}

type LoginRequestBody struct {
	Password string `json:"password"`
	MailID   string `json:"mail_id"`
}

type SignUpRequestBody struct {
	UserName string `json:"user_name"`
	MailID   string `json:"mail_id"`
	Password string `json:"password"`
}
