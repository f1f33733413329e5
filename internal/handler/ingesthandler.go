package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"pricetrack-api/internal/logic"
	"pricetrack-api/internal/svc"
)

func IngestHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewIngestLogic(r.Context(), svcCtx)
		resp, err := l.Ingest()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
