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

package model

import "time"

type Hackathon struct {
	BaseModel
	HackathonId string    `gorm:"column:hackathon_id;size:36;not null;uniqueIndex" json:"hackathonId"`
	Name        string    `gorm:"column:name;size:128;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	OrganizerId string    `gorm:"column:organizer_id;size:36;not null;index" json:"organizerId"`
	StartsAt    time.Time `gorm:"column:starts_at;not null" json:"startsAt"`
	EndsAt      time.Time `gorm:"column:ends_at;not null" json:"endsAt"`
}

func (Hackathon) TableName() string {
	return "t_hackathon"
}

type CreateHackathonReq struct {
	Name        string    `json:"name" validate:"required,max=128"`
	Description string    `json:"description" validate:"max=10000"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required"`
}
