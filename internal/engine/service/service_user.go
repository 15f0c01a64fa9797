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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/pkg/cache"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/http/jwt"
	"github.com/go-arcade/hackhub/pkg/id"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/sso"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	roleCachePrefix = "hackhub:role:"
	roleListPrefix  = "hackhub:roles:"
	roleCacheTTL    = 10 * time.Minute
	allRolesKey     = "all"
)

// UserService 注册、登录与用户资料
type UserService struct {
	repos    *repo.Repositories
	sessions *jwt.SessionStore
	auth     http.Auth
	hashCost int
	idp      *sso.Registry

	// role reference data changes only through migrate, so it is cached in process
	roleByName *cache.CachedQuery[model.Role]
	roleList   *cache.CachedQuery[[]model.Role]
}

func NewUserService(repos *repo.Repositories, sessions *jwt.SessionStore, auth http.Auth, local cache.ICache, idp *sso.Registry) *UserService {
	return &UserService{
		repos:    repos,
		sessions: sessions,
		auth:     auth,
		hashCost: bcrypt.DefaultCost,
		idp:      idp,
		roleByName: cache.NewCachedQuery[model.Role](local, roleCachePrefix, func(ctx context.Context, name string) (model.Role, error) {
			role, err := repos.Role.GetRoleByName(ctx, name)
			if err != nil {
				return model.Role{}, err
			}
			return *role, nil
		}, roleCacheTTL),
		roleList: cache.NewCachedQuery[[]model.Role](local, roleListPrefix, func(ctx context.Context, _ string) ([]model.Role, error) {
			return repos.Role.ListRoles(ctx)
		}, roleCacheTTL),
	}
}

// Register 注册用户，并在同一事务内显式分配默认角色 PARTICIPANT
func (s *UserService) Register(ctx context.Context, req *model.RegisterReq) (*model.Profile, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	participant, err := s.defaultRole(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)
	user := &model.User{
		UserId:       id.GetUUID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hashStr,
	}

	err = s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		exists, err := tx.User.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return Conflict("email %s is already registered", email)
		}
		if err := tx.User.CreateUser(ctx, user); err != nil {
			return conflictOr(err, "email %s is already registered", email)
		}
		return s.assignDefaultRole(ctx, tx, user.UserId, &participant)
	})
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Infow("user registered", "user_id", user.UserId)
	return &model.Profile{User: *user, Roles: []string{participant.Name}}, nil
}

// defaultRole reads PARTICIPANT through the role cache, outside any transaction
func (s *UserService) defaultRole(ctx context.Context) (model.Role, error) {
	participant, err := s.roleByName.Get(ctx, model.RoleParticipant)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Ctx(ctx).Errorw("default role is missing, run migrate", "role", model.RoleParticipant)
			return model.Role{}, Configuration("role %s is missing from the role table", model.RoleParticipant)
		}
		return model.Role{}, err
	}
	return participant, nil
}

func (s *UserService) assignDefaultRole(ctx context.Context, tx *repo.Repositories, userId string, participant *model.Role) error {
	return tx.UserRole.UpsertUserRole(ctx, userId, participant.RoleId)
}

// Login 校验密码并签发令牌，新的登录会使旧令牌失效
func (s *UserService) Login(ctx context.Context, req *model.LoginReq) (*model.LoginResp, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repos.User.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("incorrect email or password")
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, Validation("account %s signs in through a federated provider", email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, Unauthorized("incorrect email or password")
	}
	return s.issueLogin(ctx, user)
}

// issueLogin signs a token pair and replaces the user's session
func (s *UserService) issueLogin(ctx context.Context, user *model.User) (*model.LoginResp, error) {
	pair, err := jwt.GenToken(user.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, jwt.Session{
		UserId:      user.UserId,
		AccessToken: pair.AccessToken,
		LoginAt:     time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	roles, err := s.RoleNames(ctx, user.UserId)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Infow("user logged in", "user_id", user.UserId)
	return &model.LoginResp{
		UserInfo:     model.Profile{User: *user, Roles: roles},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Unix(),
	}, nil
}

// Refresh 用 refresh_token 换取新的令牌对，已登出的用户不能刷新
func (s *UserService) Refresh(ctx context.Context, req *model.RefreshReq) (*jwt.TokenPair, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	pair, err := jwt.RefreshToken(req.RefreshToken, s.auth.SecretKey, s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, Unauthorized("invalid refresh token")
	}
	claims, err := jwt.ParseToken(pair.AccessToken, s.auth.SecretKey)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Load(ctx, claims.UserId); err != nil {
		if errors.Is(err, jwt.ErrNoSession) {
			return nil, Unauthorized("session has ended, log in again")
		}
		return nil, err
	}
	if err := s.sessions.Save(ctx, jwt.Session{
		UserId:      claims.UserId,
		AccessToken: pair.AccessToken,
		LoginAt:     time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userId string) error {
	if err := s.sessions.Delete(ctx, userId); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	log.Ctx(ctx).Infow("user logged out", "user_id", userId)
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userId string) (*model.Profile, error) {
	user, err := s.repos.User.GetUserById(ctx, userId)
	if err != nil {
		return nil, notFoundOr(err, "user %s", userId)
	}
	roles, err := s.RoleNames(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &model.Profile{User: *user, Roles: roles}, nil
}

// RoleNames reads the user's roles from the database on every call
func (s *UserService) RoleNames(ctx context.Context, userId string) ([]string, error) {
	return s.repos.UserRole.ListRoleNames(ctx, userId)
}

func (s *UserService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roleList.Get(ctx, allRolesKey)
}
