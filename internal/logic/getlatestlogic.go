package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/svc"
	"pricetrack-api/internal/types"
)

type GetLatestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetLatestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetLatestLogic {
	return &GetLatestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetLatestLogic) GetLatest(req *types.LatestReq) (*types.LatestResp, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, BadRequest(fmt.Errorf("asset name is required"))
	}
	snap, err := l.svcCtx.Store.LatestPrice(l.ctx, name)
	if err != nil {
		return nil, err
	}
	return &types.LatestResp{
		Name:       snap.Name,
		Code:       snap.Code,
		Price:      formatPrice(snap.Price),
		CapturedAt: formatTime(snap.CapturedAt),
	}, nil
}
