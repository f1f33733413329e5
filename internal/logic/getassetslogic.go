package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/svc"
	"pricetrack-api/internal/types"
	"pricetrack-api/pkg/ingest"
)

type GetAssetsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetAssetsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetAssetsLogic {
	return &GetAssetsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetAssets optionally runs one ingestion cycle, then returns a view per asset.
// A refresh that fails after every retry still serves the stored data, flagged
// as stale, as long as there is some.
func (l *GetAssetsLogic) GetAssets(req *types.AssetsReq) (*types.AssetsResp, error) {
	resp := &types.AssetsResp{Window: l.svcCtx.Facade.Window().String()}

	var refreshErr error
	if req.Refresh {
		if l.svcCtx.Ingestor == nil {
			return nil, unavailable(ErrIngestionDisabled)
		}
		res, err := l.svcCtx.Ingestor.Ingest(l.ctx)
		l.svcCtx.RecordCycle("api", res, err)
		switch {
		case err == nil:
			resp.Refresh = toIngestResp(res)
		case errors.Is(err, ingest.ErrFatalIngestion):
			l.Errorf("refresh failed, serving stored data: %v", err)
			refreshErr = err
		default:
			return nil, err
		}
	}

	views, err := l.svcCtx.Facade.GetAssetViews(l.ctx)
	if err != nil {
		return nil, err
	}
	if refreshErr != nil {
		if len(views) == 0 {
			return nil, refreshErr
		}
		resp.Stale = true
		resp.Error = refreshErr.Error()
	}

	resp.Assets = make([]types.AssetView, 0, len(views))
	for _, v := range views {
		resp.Assets = append(resp.Assets, toAssetView(v))
	}
	return resp, nil
}
