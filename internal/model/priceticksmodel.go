package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ PriceTicksModel = (*customPriceTicksModel)(nil)

type (
	// PriceTicksModel is an interface to be customized, add more methods here,
	// and implement the added methods in customPriceTicksModel.
	PriceTicksModel interface {
		priceTicksModel
		WithSession(session sqlx.Session) PriceTicksModel
		ListByName(ctx context.Context, name string, limit int) ([]*PriceTicks, error)
		ListSince(ctx context.Context, name string, sinceMs int64) ([]*PriceTicks, error)
	}

	customPriceTicksModel struct {
		*defaultPriceTicksModel
	}
)

// NewPriceTicksModel returns a model for the database table.
func NewPriceTicksModel(conn sqlx.SqlConn) PriceTicksModel {
	return &customPriceTicksModel{
		defaultPriceTicksModel: newPriceTicksModel(conn),
	}
}

func (m *customPriceTicksModel) WithSession(session sqlx.Session) PriceTicksModel {
	return NewPriceTicksModel(sqlx.NewSqlConnFromSession(session))
}

// ListByName returns up to limit ticks for name, newest first.
func (m *customPriceTicksModel) ListByName(ctx context.Context, name string, limit int) ([]*PriceTicks, error) {
	query := fmt.Sprintf("select %s from %s where name = $1 order by ts_ms desc, id desc limit $2", priceTicksRows, m.table)
	var resp []*PriceTicks
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, name, limit); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListSince returns ticks for name captured at or after sinceMs, newest first.
func (m *customPriceTicksModel) ListSince(ctx context.Context, name string, sinceMs int64) ([]*PriceTicks, error) {
	query := fmt.Sprintf("select %s from %s where name = $1 and ts_ms >= $2 order by ts_ms desc, id desc", priceTicksRows, m.table)
	var resp []*PriceTicks
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, name, sinceMs); err != nil {
		return nil, err
	}
	return resp, nil
}
