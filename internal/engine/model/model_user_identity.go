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

// UserIdentity links a user to an account at an external login provider
type UserIdentity struct {
	BaseModel
	UserId   string `gorm:"column:user_id;size:36;not null;index" json:"userId"`
	Provider string `gorm:"column:provider;size:32;not null;uniqueIndex:uk_user_identity,priority:1" json:"provider"`
	Subject  string `gorm:"column:subject;size:255;not null;uniqueIndex:uk_user_identity,priority:2" json:"subject"`
}

func (UserIdentity) TableName() string {
	return "t_user_identity"
}
