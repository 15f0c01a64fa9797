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

package log

import (
	"context"

	"go.uber.org/zap"
)

type requestIdKey struct{}

// WithRequestId stores the request id so loggers from Ctx(ctx) carry it
func WithRequestId(ctx context.Context, requestId string) context.Context {
	if requestId == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIdKey{}, requestId)
}

// RequestId returns the request id stored in ctx, or "".
func RequestId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIdKey{}).(string); ok {
		return v
	}
	return ""
}

// Ctx returns the global logger annotated with the request id carried by ctx.
func Ctx(ctx context.Context) *zap.SugaredLogger {
	if id := RequestId(ctx); id != "" {
		return GetLogger().With("request_id", id)
	}
	return GetLogger()
}
