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

// Package sso signs users in through external OAuth2 providers.
package sso

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// ProviderConf is one [sso.<name>] section of the configuration
type ProviderConf struct {
	ClientId     string
	ClientSecret string
	RedirectUrl  string
	Scopes       []string
	AuthUrl      string
	TokenUrl     string
	UserInfoUrl  string
}

// Providers maps provider names to their settings
type Providers map[string]ProviderConf

// UserInfo is the identity a provider vouches for
type UserInfo struct {
	Subject   string
	Email     string
	Name      string
	AvatarUrl string
}

type Provider struct {
	name        string
	config      *oauth2.Config
	userInfoUrl string
	client      *resty.Client
}

func NewProvider(name string, conf ProviderConf) *Provider {
	client := resty.New()
	client.JSONMarshal = sonic.Marshal
	client.JSONUnmarshal = sonic.Unmarshal
	return &Provider{
		name: name,
		config: &oauth2.Config{
			ClientID:     conf.ClientId,
			ClientSecret: conf.ClientSecret,
			RedirectURL:  conf.RedirectUrl,
			Scopes:       conf.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  conf.AuthUrl,
				TokenURL: conf.TokenUrl,
			},
		},
		userInfoUrl: conf.UserInfoUrl,
		client:      client,
	}
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// userInfoResp covers the OIDC claim names and GitHub style field names.
// GitHub sends a numeric id, OIDC a string sub.
type userInfoResp struct {
	Sub       string          `json:"sub"`
	Id        json.RawMessage `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Login     string          `json:"login"`
	Picture   string          `json:"picture"`
	AvatarUrl string          `json:"avatar_url"`
}

func (p *Provider) UserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	var data userInfoResp
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetHeader("Accept", "application/json").
		SetResult(&data).
		Get(p.userInfoUrl)
	if err != nil {
		return nil, fmt.Errorf("user info request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("user info request failed: %s", resp.Status())
	}

	info := &UserInfo{
		Subject:   data.Sub,
		Email:     strings.ToLower(strings.TrimSpace(data.Email)),
		Name:      firstNonEmpty(data.Name, data.Login),
		AvatarUrl: firstNonEmpty(data.Picture, data.AvatarUrl),
	}
	if info.Subject == "" && len(data.Id) > 0 && string(data.Id) != "null" {
		info.Subject = strings.Trim(string(data.Id), "\"")
	}
	return info, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
