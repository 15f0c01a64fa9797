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

package http

import (
	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  any    `json:"msg"`
	Path    string `json:"path,omitempty"`
}

// WithRepErrMsg 返回错误结果，HTTP 状态码保持调用方设置的值
func WithRepErrMsg(c *fiber.Ctx, code int, errMsg string, path string) error {
	return c.JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// WithRepErrStatus sets the HTTP status and writes the error envelope
func WithRepErrStatus(c *fiber.Ctx, status int, rep *Response, errMsg string) error {
	if errMsg == "" {
		errMsg = rep.Msg
	}
	return WithRepErrMsg(c.Status(status), rep.Code, errMsg, c.Path())
}
