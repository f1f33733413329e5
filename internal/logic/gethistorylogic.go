package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/svc"
	"pricetrack-api/internal/types"
)

type GetHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetHistoryLogic {
	return &GetHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetHistoryLogic) GetHistory(req *types.HistoryReq) (*types.HistoryResp, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, BadRequest(fmt.Errorf("asset name is required"))
	}
	within := l.svcCtx.Facade.Window()
	if raw := strings.TrimSpace(req.Within); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, BadRequest(fmt.Errorf("within must be a positive duration, got %q", raw))
		}
		within = d
	}

	entries, err := l.svcCtx.Facade.HistorySince(l.ctx, name, within)
	if err != nil {
		return nil, err
	}
	resp := &types.HistoryResp{
		Name:    name,
		Within:  within.String(),
		Entries: make([]types.HistoryEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, types.HistoryEntry{
			Price:      formatPrice(e.Price),
			CapturedAt: formatTime(e.CapturedAt),
		})
	}
	return resp, nil
}
