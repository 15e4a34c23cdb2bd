package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/pkg/version"
)

// (GET /)
func (h *ServiceHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Index{
		Name:    "patchcord-planner",
		Version: version.Get().GitVersion,
		Endpoints: []string{
			"GET /health",
			"GET /api/v1/info",
			"GET /api/v1/racks",
			"POST /api/v1/calculate",
			"POST /api/v1/calculate/batch",
		},
	})
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{Status: "ok"})
}

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()
	render.JSON(w, r, api.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	})
}
