package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stockquest/api-server/pkg/kvstore"
)

// StartingBalance is the virtual cash every new account opens with.
const StartingBalance = 1_000_000

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

type AuthService struct {
	KV     kvstore.KVStore
	DB     *gorm.DB
	Secret []byte
}

func New(kv kvstore.KVStore, db *gorm.DB, secret string) *AuthService {
	return &AuthService{
		KV:     kv,
		DB:     db,
		Secret: []byte(secret),
	}
}

func (a *AuthService) Login(loginDetails LoginRequestBody) (string, error) {
	var user Users
	err := a.DB.Table("users").Select("user_id, password").Where("mail_id = ?", loginDetails.MailID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginDetails.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := a.GenerateToken(user.UserID)
	if err != nil {
		return "", err
	}

	// List of tokens per user: multiple devices stay logged in independently
	err = a.KV.RPush("session_token_"+fmt.Sprintf("%d", user.UserID), token)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (a *AuthService) GenerateToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString(a.Secret)
}

func (a *AuthService) ValidateToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.Secret, nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID := int(claims["user_id"].(float64))
		return userID, nil
	}

	return 0, errors.New("invalid token")
}

func (a *AuthService) RevokeToken(userID int, tokenString string) error {
	return a.KV.LRem("session_token_"+fmt.Sprintf("%d", userID), 1, tokenString)
}

func (a *AuthService) CheckIfTokenIsWhiteListed(userID int, tokenString string) bool {
	tokens, err := a.KV.LRange("session_token_"+fmt.Sprintf("%d", userID), 0, -1)
	if err != nil {
		return false
	}

	for _, t := range tokens {
		if t == tokenString {
			return true
		}
	}
	return false
}

func (a *AuthService) Logout(userID int, tokenString string) error {
	return a.RevokeToken(userID, tokenString)
}

func (a *AuthService) SignUp(signUpDetails SignUpRequestBody) error {
	var count int64
	err := a.DB.Table("users").Where("mail_id = ?", signUpDetails.MailID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(signUpDetails.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return a.DB.Table("users").Create(&Users{
		UserName:   signUpDetails.UserName,
		MailID:     signUpDetails.MailID,
		Password:   string(hashed),
		ProfilePic: "default.jpg",
		Balance:    StartingBalance,
	}).Error
}
