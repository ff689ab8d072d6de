package handler

import (
	"net/http"

	"github.com/vfg2006/customer-rfm-api/internal/api/handler/router"
	"github.com/vfg2006/customer-rfm-api/internal/usecases/segmenting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func RfmPipeline(runner RfmRunner, segmenter segmenting.Segmenter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rfm/run",
			Method:  http.MethodPost,
			Handler: RunRfmPipeline(runner),
		},
		{
			Path:    "/v1/rfm/status",
			Method:  http.MethodGet,
			Handler: GetRfmStatus(runner),
		},
		{
			Path:    "/v1/rfm/snapshot",
			Method:  http.MethodGet,
			Handler: GetRfmSnapshot(segmenter),
		},
	}
}
