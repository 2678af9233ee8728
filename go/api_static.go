package trackerserver

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-order-tracker/internal/shared/errors"
)

// StaticAPI serves the frontend assets for every path no other route matched.
type StaticAPI struct {
	root http.FileSystem
}

// NewStaticAPI serves files below dir. An empty dir disables static serving.
func NewStaticAPI(dir string) StaticAPI {
	if strings.TrimSpace(dir) == "" {
		return StaticAPI{}
	}
	return StaticAPI{root: http.Dir(dir)}
}

// Get /*
func (api *StaticAPI) Serve(c *gin.Context) {
	if api.root == nil || c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		apierrors.Respond(c, apierrors.ErrNotFound)
		return
	}
	name := path.Clean("/" + c.Request.URL.Path)
	if name == "/api" || strings.HasPrefix(name, "/api/") || !api.exists(name) {
		apierrors.Respond(c, apierrors.ErrNotFound)
		return
	}
	c.FileFromFS(name, api.root)
}

// exists reports whether name is a file, or a directory holding index.html.
func (api *StaticAPI) exists(name string) bool {
	f, err := api.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	return api.exists(path.Join(name, "index.html"))
}
