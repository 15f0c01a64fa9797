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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[log]
level = "DEBUG"

[http]
port = 9090

[http.auth]
secretKey = "s3cret"
accessExpire = "30m"

[database.mysql]
host = "127.0.0.1"
user = "hackhub"
dbname = "hackhub"

[teamRequest]
ttl = "24h"
`

func writeConf(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfigFile(t *testing.T) {
	c, err := LoadConfigFile(writeConf(t, sample), false)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", c.Log.Level)
	assert.Equal(t, 9090, c.Http.Port)
	assert.Equal(t, "/api/v1", c.Http.ContextPath)
	assert.Equal(t, "s3cret", c.Http.Auth.SecretKey)
	assert.Equal(t, 30*time.Minute, c.Http.Auth.AccessExpire)
	assert.Equal(t, "hackhub", c.Database.MySQL.DBName)
	assert.Equal(t, 24*time.Hour, c.TeamRequest.TTL)

	// defaults
	assert.Equal(t, 50, c.Workflow.MinReasonLength)
	assert.True(t, c.Job.Enable)
	assert.Equal(t, "0 * * * * *", c.Job.ExpireSpec)
	assert.Equal(t, 50*time.Second, c.Job.LockTTL)
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("HACKHUB_HTTP_AUTH_SECRETKEY", "from-env")
	c, err := LoadConfigFile(writeConf(t, sample), false)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Http.Auth.SecretKey)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"), false)
	assert.Error(t, err)

	_, err = LoadConfigFile(writeConf(t, "[teamRequest]\nttl = \"-1h\"\n"), false)
	assert.Error(t, err)
}
