package profile

import (
	"gorm.io/gorm"

	"github.com/stockquest/api-server/pkg/kvstore"
)

type ProfileService struct {
	KV kvstore.KVStore
	DB *gorm.DB
}

func New(kv kvstore.KVStore, db *gorm.DB) *ProfileService {
	return &ProfileService{
		KV: kv,
		DB: db,
	}
}

func (p *ProfileService) GetProfile(userID int) (Profile, error) {
	var profile Profile
	err := p.DB.Table("users").
		Select("user_id, user_name, mail_id, profile_pic, balance").
		Where("user_id = ?", userID).
		Scan(&profile).Error
	if err != nil {
		return profile, err
	}

	var count int64
	err = p.DB.Table("portfolios").Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return profile, err
	}
	profile.Portfolios = int(count)

	return profile, nil
}
