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


package database

import (
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// IDatabase is the handle repositories depend on. Production code gets the
// pool through Manager; transactions and tests wrap a *gorm.DB directly.
type IDatabase interface {
	Database() *gorm.DB
}

type handle struct {
	db *gorm.DB
}

func (h handle) Database() *gorm.DB {
	return h.db
}

// NewGormDB wraps an existing handle, typically a transaction or a test database.
func NewGormDB(db *gorm.DB) IDatabase {
	return handle{db: db}
}

func ProvideIDatabase(m Manager) IDatabase {
	return handle{db: m.MySQL()}
}

// ReadDB routes a query to a replica when the resolver plugin is registered.
// Without replicas the clause is a no-op. Never use it inside a transaction.
func ReadDB(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Read)
}
