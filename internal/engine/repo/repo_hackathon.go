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

type IHackathonRepository interface {
	CreateHackathon(ctx context.Context, h *model.Hackathon) error
	GetHackathon(ctx context.Context, hackathonId string) (*model.Hackathon, error)
	ListHackathons(ctx context.Context) ([]model.Hackathon, error)
}

type HackathonRepo struct {
	database.IDatabase
}

func NewHackathonRepo(db database.IDatabase) IHackathonRepository {
	return &HackathonRepo{IDatabase: db}
}

func (r *HackathonRepo) CreateHackathon(ctx context.Context, h *model.Hackathon) error {
	return r.Database().WithContext(ctx).Create(h).Error
}

func (r *HackathonRepo) GetHackathon(ctx context.Context, hackathonId string) (*model.Hackathon, error) {
	var h model.Hackathon
	if err := r.Database().WithContext(ctx).Where("hackathon_id = ?", hackathonId).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HackathonRepo) ListHackathons(ctx context.Context) ([]model.Hackathon, error) {
	list := make([]model.Hackathon, 0)
	err := database.ReadDB(r.Database().WithContext(ctx)).Order("starts_at ASC").Find(&list).Error
	return list, err
}
