package jwt

import (
	"time"

	"club-portal-system/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Payload 令牌携带的用户信息
type Payload struct {
	UserID uint `json:"user_id"`
	RoleID int  `json:"role_id"` // 0 普通成员，1 社团管理员
}

type Claims struct {
	Payload
	jwtlib.RegisteredClaims
}

// CreateToken 签发 HS256 访问令牌
func CreateToken(payload Payload) string {
	now := time.Now()
	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "club-portal-system",
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Duration(config.Get().JWT.AccessExpire) * time.Second)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Get().JWT.AccessSecret))
	if err != nil {
		// secret 为字节切片时 HS256 签名不会失败
		return ""
	}
	return signed
}

// ParseToken 校验并解析令牌
func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, jwtlib.ErrSignatureInvalid
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
