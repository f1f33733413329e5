package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "pricetrack-api/internal/cache"
	"pricetrack-api/internal/model"
	"pricetrack-api/pkg/quote"
)

// ErrAssetNotFound is returned when no latest row exists for an asset.
var ErrAssetNotFound = errors.New("quotes: asset not found")

var _ quote.Store = (*Service)(nil)

// Service persists readings to SQL and mirrors latest prices into Redis.
type Service struct {
	sqlConn     sqlx.SqlConn
	latestModel model.PriceLatestModel
	ticksModel  model.PriceTicksModel
	cache       gocache.Cache
	ttl         cachekeys.TTLSet
	now         func() time.Time
}

// Config enumerates dependencies required to persist quotes.
type Config struct {
	SQLConn     sqlx.SqlConn
	LatestModel model.PriceLatestModel
	TicksModel  model.PriceTicksModel
	// Cache is optional.
	Cache gocache.Cache
	TTL   cachekeys.TTLSet
}

// NewService wires a quote store. Models default to ones built on SQLConn.
func NewService(cfg Config) (*Service, error) {
	if cfg.SQLConn == nil {
		return nil, errors.New("quotes: sql conn is required")
	}
	s := &Service{
		sqlConn:     cfg.SQLConn,
		latestModel: cfg.LatestModel,
		ticksModel:  cfg.TicksModel,
		cache:       cfg.Cache,
		ttl:         cfg.TTL,
		now:         time.Now,
	}
	if s.latestModel == nil {
		s.latestModel = model.NewPriceLatestModel(cfg.SQLConn)
	}
	if s.ticksModel == nil {
		s.ticksModel = model.NewPriceTicksModel(cfg.SQLConn)
	}
	return s, nil
}

// WriteCycle appends every reading to price_ticks and upserts price_latest
// in a single transaction. Cache refresh happens after commit.
func (s *Service) WriteCycle(ctx context.Context, readings []quote.Reading) error {
	if len(readings) == 0 {
		return nil
	}
	updatedAt := s.now().UTC().UnixMilli()
	err := s.sqlConn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		ticks := s.ticksModel.WithSession(session)
		latest := s.latestModel.WithSession(session)
		for _, r := range readings {
			if _, err := ticks.Insert(ctx, &model.PriceTicks{
				Name:  r.Name,
				Price: priceToNull(r.Price),
				TsMs:  r.CapturedAt.UTC().UnixMilli(),
			}); err != nil {
				return fmt.Errorf("append tick %s: %w", r.Name, err)
			}
		}
		for _, r := range readings {
			if err := latest.Upsert(ctx, &model.PriceLatest{
				Name:        r.Name,
				Code:        r.Code,
				Price:       priceToNull(r.Price),
				TsMs:        r.CapturedAt.UTC().UnixMilli(),
				UpdatedAtMs: updatedAt,
			}); err != nil {
				return fmt.Errorf("upsert latest %s: %w", r.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("quotes: write cycle: %w", err)
	}

	// Last reading per name wins, matching the upsert order above.
	for _, r := range readings {
		s.cacheLatest(ctx, quote.LatestSnapshot{Name: r.Name, Code: r.Code, Price: r.Price, CapturedAt: r.CapturedAt.UTC()})
	}
	return nil
}

// ReadLatestAll returns every latest snapshot ordered by name.
func (s *Service) ReadLatestAll(ctx context.Context) ([]quote.LatestSnapshot, error) {
	rows, err := s.latestModel.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("quotes: list latest: %w", err)
	}
	out := make([]quote.LatestSnapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := latestFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// ReadHistory returns up to limit entries for name, newest first.
func (s *Service) ReadHistory(ctx context.Context, name string, limit int) ([]quote.HistoryEntry, error) {
	if limit <= 0 {
		limit = quote.DefaultHistoryLimit
	}
	rows, err := s.ticksModel.ListByName(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("quotes: list history %s: %w", name, err)
	}
	return historyFromRows(rows)
}

// ReadHistorySince returns entries for name captured at or after since, newest first.
func (s *Service) ReadHistorySince(ctx context.Context, name string, since time.Time) ([]quote.HistoryEntry, error) {
	rows, err := s.ticksModel.ListSince(ctx, name, since.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("quotes: list history %s since %s: %w", name, since.UTC().Format(time.RFC3339), err)
	}
	return historyFromRows(rows)
}

// LatestPrice returns the latest snapshot for name, preferring the Redis copy.
func (s *Service) LatestPrice(ctx context.Context, name string) (quote.LatestSnapshot, error) {
	if snap, ok := s.cachedLatest(ctx, name); ok {
		return snap, nil
	}
	row, err := s.latestModel.FindOne(ctx, name)
	if errors.Is(err, model.ErrNotFound) {
		return quote.LatestSnapshot{}, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	if err != nil {
		return quote.LatestSnapshot{}, fmt.Errorf("quotes: find latest %s: %w", name, err)
	}
	snap, err := latestFromRow(row)
	if err != nil {
		return quote.LatestSnapshot{}, err
	}
	s.cacheLatest(ctx, snap)
	return snap, nil
}

type cachedPrice struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Price string `json:"price,omitempty"`
	TsMs  int64  `json:"ts"`
}

func (s *Service) cacheLatest(ctx context.Context, snap quote.LatestSnapshot) {
	if s.cache == nil {
		return
	}
	ttl := cachekeys.PriceTTL(s.ttl)
	if ttl <= 0 {
		return
	}
	key := cachekeys.PriceLatestKey(snap.Name)
	payload := cachedPrice{Name: snap.Name, Code: snap.Code, TsMs: snap.CapturedAt.UnixMilli()}
	if snap.Price.Valid {
		payload.Price = snap.Price.Decimal.String()
	}
	if err := s.cache.SetWithExpireCtx(ctx, key, payload, ttl); err != nil {
		logx.WithContext(ctx).Errorf("quotes: cache price key=%s err=%v", key, err)
	}
}

func (s *Service) cachedLatest(ctx context.Context, name string) (quote.LatestSnapshot, bool) {
	if s.cache == nil {
		return quote.LatestSnapshot{}, false
	}
	key := cachekeys.PriceLatestKey(name)
	var payload cachedPrice
	if err := s.cache.GetCtx(ctx, key, &payload); err != nil {
		if !s.cache.IsNotFound(err) {
			logx.WithContext(ctx).Errorf("quotes: load price key=%s err=%v", key, err)
		}
		return quote.LatestSnapshot{}, false
	}
	price, err := parsePrice(sql.NullString{String: payload.Price, Valid: payload.Price != ""})
	if err != nil {
		logx.WithContext(ctx).Errorf("quotes: cached price key=%s err=%v", key, err)
		return quote.LatestSnapshot{}, false
	}
	return quote.LatestSnapshot{
		Name:       payload.Name,
		Code:       payload.Code,
		Price:      price,
		CapturedAt: time.UnixMilli(payload.TsMs).UTC(),
	}, true
}

func latestFromRow(row *model.PriceLatest) (quote.LatestSnapshot, error) {
	price, err := parsePrice(row.Price)
	if err != nil {
		return quote.LatestSnapshot{}, fmt.Errorf("quotes: latest %s: %w", row.Name, err)
	}
	return quote.LatestSnapshot{
		Name:       row.Name,
		Code:       row.Code,
		Price:      price,
		CapturedAt: time.UnixMilli(row.TsMs).UTC(),
	}, nil
}

func historyFromRows(rows []*model.PriceTicks) ([]quote.HistoryEntry, error) {
	out := make([]quote.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		price, err := parsePrice(row.Price)
		if err != nil {
			return nil, fmt.Errorf("quotes: tick %d: %w", row.Id, err)
		}
		out = append(out, quote.HistoryEntry{
			Name:       row.Name,
			Price:      price,
			CapturedAt: time.UnixMilli(row.TsMs).UTC(),
		})
	}
	return out, nil
}

func priceToNull(p decimal.NullDecimal) sql.NullString {
	if !p.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: p.Decimal.String(), Valid: true}
}

func parsePrice(v sql.NullString) (decimal.NullDecimal, error) {
	if !v.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid stored price %q: %w", v.String, err)
	}
	return decimal.NewNullDecimal(d), nil
}
