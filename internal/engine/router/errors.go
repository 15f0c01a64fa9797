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

package router

import (
	"errors"

	"github.com/go-arcade/hackhub/internal/engine/service"
	"github.com/go-arcade/hackhub/pkg/http"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// fail writes err as an error response, domain errors keep their message
func fail(c *fiber.Ctx, err error) error {
	var se *service.Error
	msg := ""
	if errors.As(err, &se) {
		msg = se.Msg
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.BadRequest, msg)
	case errors.Is(err, service.ErrNotFound):
		return http.WithRepErrStatus(c, fiber.StatusNotFound, http.NotFound, msg)
	case errors.Is(err, service.ErrConflict):
		return http.WithRepErrStatus(c, fiber.StatusConflict, http.Conflict, msg)
	case errors.Is(err, service.ErrForbidden):
		return http.WithRepErrStatus(c, fiber.StatusForbidden, http.Forbidden, msg)
	case errors.Is(err, service.ErrUnauthorized):
		return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.AuthenticationFailed, msg)
	case errors.Is(err, service.ErrConfiguration):
		log.Ctx(c.UserContext()).Errorw("reference data misconfigured", "path", c.Path(), "error", err)
		return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.Misconfigured, "")
	default:
		log.Ctx(c.UserContext()).Errorw("request failed", "path", c.Path(), "error", err)
		return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.InternalError, "")
	}
}

// badBody answers a request whose body could not be parsed
func badBody(c *fiber.Ctx, err error) error {
	log.Ctx(c.UserContext()).Debugw("parse request body failed", "path", c.Path(), "error", err)
	return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed, "")
}
