// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package audit

import (
	"context"
	"time"

	"github.com/leonardoelit/backoffice/errs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// actionRow 是 backoffice_actions 表的一列。
type actionRow struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	Operator  string    `gorm:"size:128;index"`
	Action    string    `gorm:"size:64;index"`
	Target    string    `gorm:"size:128"`
	Key       string    `gorm:"size:64;uniqueIndex"`
	Message   string    `gorm:"size:512"`
}

func (actionRow) TableName() string { return "backoffice_actions" }

func toRow(e Entry) actionRow {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	return actionRow{CreatedAt: at.UTC(), Operator: e.Operator, Action: e.Action, Target: e.Target, Key: e.Key, Message: e.Message}
}

func fromRow(r actionRow) Entry {
	return Entry{At: r.CreatedAt, Operator: r.Operator, Action: r.Action, Target: r.Target, Key: r.Key, Message: r.Message}
}

// Gorm 把紀錄寫入 postgres。
type Gorm struct {
	db *gorm.DB
}

// OpenPostgres 連線並建立（或更新）紀錄表。
func OpenPostgres(dsn string) (*Gorm, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errs.Wrap(err, "open audit database")
	}
	return NewGorm(db)
}

// NewGorm 以既有連線建立 Journal。
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&actionRow{}); err != nil {
		return nil, errs.Wrap(err, "migrate audit table")
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Record(ctx context.Context, e Entry) error {
	row := toRow(e)
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errs.WrapWithExtra(err, "write audit entry", e.Action)
	}
	return nil
}

// Recent 回傳最近 limit 筆紀錄（新到舊），可依 operator 篩選。
func (g *Gorm) Recent(ctx context.Context, operator string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q := g.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if operator != "" {
		q = q.Where("operator = ?", operator)
	}
	var rows []actionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "read audit entries")
	}
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = fromRow(r)
	}
	return out, nil
}

// Close 關閉底層連線。
func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
