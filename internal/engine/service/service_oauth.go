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

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/internal/engine/repo"
	"github.com/go-arcade/hackhub/pkg/id"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/sso"
	"gorm.io/gorm"
)

func (s *UserService) provider(name string) (*sso.Provider, error) {
	if s.idp == nil {
		return nil, NotFound("login provider %s", name)
	}
	p, ok := s.idp.Provider(name)
	if !ok {
		return nil, NotFound("login provider %s", name)
	}
	return p, nil
}

// OAuthRedirect 生成第三方登录地址，state 一次有效
func (s *UserService) OAuthRedirect(ctx context.Context, providerName string) (string, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", err
	}
	state, err := s.idp.NewState(ctx, providerName)
	if err != nil {
		return "", fmt.Errorf("issue oauth state: %w", err)
	}
	return p.AuthCodeURL(state), nil
}

// OAuthCallback 完成第三方登录。首次登录的账号没有密码，并获得默认角色 PARTICIPANT；
// 邮箱已注册时把第三方账号关联到已有用户
func (s *UserService) OAuthCallback(ctx context.Context, providerName, state, code string) (*model.LoginResp, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return nil, err
	}
	if err := s.idp.TakeState(ctx, providerName, state); err != nil {
		if errors.Is(err, sso.ErrInvalidState) {
			log.Ctx(ctx).Warnw("invalid oauth state", "provider", providerName)
			return nil, Unauthorized("login session expired, start again")
		}
		return nil, err
	}
	if code == "" {
		return nil, Validation("authorization code is required")
	}

	token, err := p.Exchange(ctx, code)
	if err != nil {
		log.Ctx(ctx).Warnw("oauth code exchange failed", "provider", providerName, "error", err)
		return nil, Unauthorized("provider rejected the authorization code")
	}
	info, err := p.UserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s user info: %w", providerName, err)
	}
	if info.Subject == "" || info.Email == "" {
		return nil, Validation("provider %s did not share an account id and email", providerName)
	}

	participant, err := s.defaultRole(ctx)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = s.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		user, err = s.federatedUser(ctx, tx, providerName, info, &participant)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.issueLogin(ctx, user)
}

func (s *UserService) federatedUser(ctx context.Context, tx *repo.Repositories, providerName string, info *sso.UserInfo, participant *model.Role) (*model.User, error) {
	identity, err := tx.Identity.GetIdentity(ctx, providerName, info.Subject)
	if err == nil {
		return tx.User.GetUserById(ctx, identity.UserId)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := tx.User.GetUserByEmail(ctx, info.Email)
	switch {
	case err == nil:
		log.Ctx(ctx).Infow("linking federated identity to existing user", "user_id", user.UserId, "provider", providerName)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			UserId: id.GetUUID(),
			Name:   displayName(info),
			Email:  info.Email,
			Avatar: info.AvatarUrl,
		}
		if err := tx.User.CreateUser(ctx, user); err != nil {
			return nil, conflictOr(err, "email %s is already registered", info.Email)
		}
		if err := s.assignDefaultRole(ctx, tx, user.UserId, participant); err != nil {
			return nil, err
		}
		log.Ctx(ctx).Infow("user registered through provider", "user_id", user.UserId, "provider", providerName)
	default:
		return nil, err
	}

	if err := tx.Identity.CreateIdentity(ctx, &model.UserIdentity{
		UserId:   user.UserId,
		Provider: providerName,
		Subject:  info.Subject,
	}); err != nil {
		return nil, conflictOr(err, "%s account is already linked", providerName)
	}
	return user, nil
}

func displayName(info *sso.UserInfo) string {
	if info.Name != "" {
		return info.Name
	}
	name, _, _ := strings.Cut(info.Email, "@")
	return name
}

func (s *UserService) LoginProviders() []string {
	if s.idp == nil {
		return nil
	}
	return s.idp.Names()
}
