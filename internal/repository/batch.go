package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type WriteOp string

const (
	OpSet    WriteOp = "set"
	OpUpdate WriteOp = "update"
	OpDelete WriteOp = "delete"
)

// BatchOp is one write in an atomic batch. OpSet carries a full Row to
// insert; OpUpdate carries Fields keyed by column name for the record with
// ID; OpDelete removes by ID, or by Where when the target has no single-id
// key (the membership journal).
type BatchOp struct {
	Table  string
	ID     int64
	Op     WriteOp
	Fields map[string]any
	Where  map[string]any
	Row    any
}

// BatchWriter commits a list of writes atomically: either every op is
// applied or none is. Services stage all mutations for one operation into
// a single BatchWrite call, which is what rules out partial writes.
type BatchWriter interface {
	BatchWrite(ctx context.Context, ops []BatchOp) error
}

type GormBatchWriter struct {
	db *gorm.DB
}

func NewBatchWriter(db *gorm.DB) *GormBatchWriter {
	return &GormBatchWriter{db: db}
}

func (w *GormBatchWriter) BatchWrite(ctx context.Context, ops []BatchOp) error {
	if len(ops) == 0 {
		return nil
	}
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := applyOp(tx, op); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyOp(tx *gorm.DB, op BatchOp) error {
	switch op.Op {
	case OpSet:
		if op.Row == nil {
			return fmt.Errorf("batch: set on %s without row", op.Table)
		}
		return tx.Create(op.Row).Error

	case OpUpdate:
		model := rowFor(op.Table)
		if model == nil {
			return fmt.Errorf("batch: unknown table %s", op.Table)
		}
		res := tx.Model(model).Where("id = ?", op.ID).Updates(op.Fields)
		return res.Error

	case OpDelete:
		model := rowFor(op.Table)
		if model == nil {
			return fmt.Errorf("batch: unknown table %s", op.Table)
		}
		q := tx
		if len(op.Where) > 0 {
			q = q.Where(op.Where)
		} else {
			q = q.Where("id = ?", op.ID)
		}
		return q.Delete(model).Error
	}
	return fmt.Errorf("batch: unknown op %q on %s", op.Op, op.Table)
}
