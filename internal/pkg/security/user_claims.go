package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Sundial"
	JWTExpirationTime        = time.Hour * 24 * 30
)

// UserClaims Token 中携带的业务信息，签发方为外部身份服务
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
