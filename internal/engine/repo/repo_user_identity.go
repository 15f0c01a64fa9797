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

package repo

import (
	"context"

	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/database"
)

type IUserIdentityRepository interface {
	GetIdentity(ctx context.Context, provider, subject string) (*model.UserIdentity, error)
	CreateIdentity(ctx context.Context, identity *model.UserIdentity) error
}

type UserIdentityRepo struct {
	database.IDatabase
}

func NewUserIdentityRepo(db database.IDatabase) IUserIdentityRepository {
	return &UserIdentityRepo{IDatabase: db}
}

func (r *UserIdentityRepo) GetIdentity(ctx context.Context, provider, subject string) (*model.UserIdentity, error) {
	var identity model.UserIdentity
	err := r.Database().WithContext(ctx).
		Where("provider = ? AND subject = ?", provider, subject).
		First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *UserIdentityRepo) CreateIdentity(ctx context.Context, identity *model.UserIdentity) error {
	return r.Database().WithContext(ctx).Create(identity).Error
}
