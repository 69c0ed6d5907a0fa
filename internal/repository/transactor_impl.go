package repository

import (
	"context"
	"sort"
	"time"

	domainRepo "docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &gormTransactor{db: db}
}

// WithinTransaction joins the transaction already bound to ctx, if any.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db scoped to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// upsertFields inserts a row keyed by keyColumn or updates only the given
// columns of the existing row.
func upsertFields(ctx context.Context, db *gorm.DB, model interface{}, keyColumn string, key uuid.UUID, fields domainRepo.Fields) error {
	if len(fields) == 0 {
		return nil
	}

	now := time.Now()
	row := map[string]interface{}{
		keyColumn:    key,
		"created_at": now,
		"updated_at": now,
	}
	columns := make([]string, 0, len(fields)+1)
	for name, value := range fields {
		row[name] = value
		columns = append(columns, name)
	}
	sort.Strings(columns)
	columns = append(columns, "updated_at")

	err := conn(ctx, db).Model(model).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: keyColumn}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
	return translate(err)
}
