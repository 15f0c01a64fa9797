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

import (
	"time"

	"github.com/go-arcade/hackhub/pkg/statemachine"
)

// RoleRequest 角色申请，决定后不可再修改
type RoleRequest struct {
	BaseModel
	RequestId     string                    `gorm:"column:request_id;size:26;not null;uniqueIndex" json:"requestId"`
	UserId        string                    `gorm:"column:user_id;size:36;not null;index" json:"userId"`
	RoleId        string                    `gorm:"column:role_id;size:36;not null" json:"roleId"`
	RoleName      string                    `gorm:"column:role_name;size:32;not null" json:"roleName"`
	Reason        string                    `gorm:"column:reason;type:text;not null" json:"reason"`
	SupportingUrl *string                   `gorm:"column:supporting_url;size:2048" json:"supportingUrl,omitempty"`
	Status        statemachine.ReviewStatus `gorm:"column:status;size:16;not null;index" json:"status"`
	ReviewerId    *string                   `gorm:"column:reviewer_id;size:36" json:"reviewerId,omitempty"`
	ReviewNotes   *string                   `gorm:"column:review_notes;type:text" json:"reviewNotes,omitempty"`
	ReviewedAt    *time.Time                `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
}

func (RoleRequest) TableName() string {
	return "t_role_request"
}

type SubmitRoleRequestReq struct {
	RoleType      string  `json:"roleType" validate:"required"`
	Reason        string  `json:"reason" validate:"required"`
	SupportingUrl *string `json:"supportingUrl,omitempty"`
}

type DecideRoleRequestReq struct {
	Decision    string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	ReviewNotes string `json:"reviewNotes" validate:"max=4000"`
}

// StatusMessage acknowledges a decision
type StatusMessage struct {
	RequestId string                    `json:"requestId"`
	Status    statemachine.ReviewStatus `json:"status"`
	Message   string                    `json:"message"`
}
