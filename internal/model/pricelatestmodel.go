package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ PriceLatestModel = (*customPriceLatestModel)(nil)

type (
	// PriceLatestModel is an interface to be customized, add more methods here,
	// and implement the added methods in customPriceLatestModel.
	PriceLatestModel interface {
		priceLatestModel
		WithSession(session sqlx.Session) PriceLatestModel
		Upsert(ctx context.Context, data *PriceLatest) error
		ListAll(ctx context.Context) ([]*PriceLatest, error)
	}

	customPriceLatestModel struct {
		*defaultPriceLatestModel
	}
)

// NewPriceLatestModel returns a model for the database table.
func NewPriceLatestModel(conn sqlx.SqlConn) PriceLatestModel {
	return &customPriceLatestModel{
		defaultPriceLatestModel: newPriceLatestModel(conn),
	}
}

func (m *customPriceLatestModel) WithSession(session sqlx.Session) PriceLatestModel {
	return NewPriceLatestModel(sqlx.NewSqlConnFromSession(session))
}

// Upsert replaces the row for data.Name, keeping one row per asset.
func (m *customPriceLatestModel) Upsert(ctx context.Context, data *PriceLatest) error {
	query := fmt.Sprintf(`insert into %s (%s) values ($1, $2, $3, $4, $5)
on conflict ("name") do update set
    "code" = excluded."code",
    "price" = excluded."price",
    "ts_ms" = excluded."ts_ms",
    "updated_at_ms" = excluded."updated_at_ms"`, m.table, priceLatestRowsExpectAutoSet)
	_, err := m.conn.ExecCtx(ctx, query, data.Name, data.Code, data.Price, data.TsMs, data.UpdatedAtMs)
	return err
}

// ListAll returns every latest row ordered by name.
func (m *customPriceLatestModel) ListAll(ctx context.Context) ([]*PriceLatest, error) {
	query := fmt.Sprintf("select %s from %s order by name", priceLatestRows, m.table)
	var resp []*PriceLatest
	if err := m.conn.QueryRowsCtx(ctx, &resp, query); err != nil {
		return nil, err
	}
	return resp, nil
}
