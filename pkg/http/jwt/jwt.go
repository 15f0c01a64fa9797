// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

var (
	issUser = "hackhub"

	ErrTokenExpired = jwt.ErrTokenExpired
	ErrInvalidToken = errors.New("invalid token")
)

type AuthClaims struct {
	UserId string `json:"userId"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func sign(userId, kind string, secretKey []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := &AuthClaims{
		UserId: userId,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issUser,
			Subject:   userId,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// GenToken 生成 access_token 和 refresh_token
func GenToken(userId string, secretKey []byte, accessExpire, refreshExpire time.Duration) (*TokenPair, error) {
	now := time.Now()
	aToken, err := sign(userId, kindAccess, secretKey, accessExpire, now)
	if err != nil {
		log.Errorw("sign access token", "error", err)
		return nil, err
	}
	rToken, err := sign(userId, kindRefresh, secretKey, refreshExpire, now)
	if err != nil {
		log.Errorw("sign refresh token", "error", err)
		return nil, err
	}
	return &TokenPair{
		AccessToken:  aToken,
		RefreshToken: rToken,
		ExpiresAt:    now.Add(accessExpire),
	}, nil
}

func parse(token, secretKey, kind string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(issUser))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Kind != kind || claims.UserId == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseToken 校验 access_token
func ParseToken(aToken, secretKey string) (*AuthClaims, error) {
	return parse(aToken, secretKey, kindAccess)
}

// RefreshToken 用 refresh_token 换取新的令牌对
func RefreshToken(rToken, secretKey string, accessExpire, refreshExpire time.Duration) (*TokenPair, error) {
	claims, err := parse(rToken, secretKey, kindRefresh)
	if err != nil {
		return nil, err
	}
	return GenToken(claims.UserId, []byte(secretKey), accessExpire, refreshExpire)
}
