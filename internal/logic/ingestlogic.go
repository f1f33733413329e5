package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/svc"
	"pricetrack-api/internal/types"
)

type IngestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewIngestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *IngestLogic {
	return &IngestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *IngestLogic) Ingest() (*types.IngestResp, error) {
	if l.svcCtx.Ingestor == nil {
		return nil, unavailable(ErrIngestionDisabled)
	}
	res, err := l.svcCtx.Ingestor.Ingest(l.ctx)
	l.svcCtx.RecordCycle("api", res, err)
	if err != nil {
		return nil, err
	}
	return toIngestResp(res), nil
}
