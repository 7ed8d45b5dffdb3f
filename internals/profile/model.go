package profile

type Profile struct {
	UserID     int     `json:"user_id"`
	UserName   string  `json:"user_name"`
	MailID     string  `json:"mail_id"`
	ProfilePic string  `json:"profile_pic"`
	Balance    float64 `json:"balance"`
	Portfolios int     `json:"portfolios"`
}
