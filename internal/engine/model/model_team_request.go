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

type TeamRequestKind string

const (
	// TeamRequestJoin is a user asking to join, the leader decides
	TeamRequestJoin TeamRequestKind = "JOIN"
	// TeamRequestInvite is the leader inviting a user, the user decides
	TeamRequestInvite TeamRequestKind = "INVITE"
)

func (k TeamRequestKind) Valid() bool {
	return k == TeamRequestJoin || k == TeamRequestInvite
}

// TeamRequest 入队申请或邀请，接受、拒绝或过期后删除
type TeamRequest struct {
	BaseModel
	TeamId      string          `gorm:"column:team_id;size:36;not null;uniqueIndex:uk_team_request,priority:1" json:"teamId"`
	UserId      string          `gorm:"column:user_id;size:36;not null;uniqueIndex:uk_team_request,priority:2;index" json:"userId"`
	Kind        TeamRequestKind `gorm:"column:kind;size:8;not null" json:"kind"`
	RequestedBy string          `gorm:"column:requested_by;size:36;not null" json:"requestedBy"`
	ExpiresAt   time.Time       `gorm:"column:expires_at;not null;index" json:"expiresAt"`
}

func (TeamRequest) TableName() string {
	return "t_team_request"
}

// Expired reports whether the request can no longer be accepted at now
func (r *TeamRequest) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type CreateTeamRequestReq struct {
	// UserId is the invitee for INVITE, ignored for JOIN
	UserId string          `json:"userId"`
	Kind   TeamRequestKind `json:"kind" validate:"required,oneof=JOIN INVITE"`
}
