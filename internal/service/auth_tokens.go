package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims 管理员令牌声明
type JWTClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserJWTClaims 用户令牌声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
