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

// User 用户表，联合登录账号没有密码
type User struct {
	BaseModel
	UserId       string  `gorm:"column:user_id;size:36;not null;uniqueIndex" json:"userId"`
	Name         string  `gorm:"column:name;size:128;not null" json:"name"`
	Email        string  `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash *string `gorm:"column:password_hash;size:72" json:"-"`
	Avatar       string  `gorm:"column:avatar;size:512" json:"avatar,omitempty"`
	Bio          string  `gorm:"column:bio;type:text" json:"bio,omitempty"`
}

func (User) TableName() string {
	return "t_user"
}

type RegisterReq struct {
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Profile is the user as shown to the user, with current role names
type Profile struct {
	User
	Roles []string `json:"roles"`
}

type LoginResp struct {
	UserInfo     Profile `json:"userInfo"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresAt    int64   `json:"expiresAt"`
}
