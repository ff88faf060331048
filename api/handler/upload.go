package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/httpcontext"
)

// UploadHandler stores a single file per request under the content
// directory and returns the stored path. Files are renamed with a
// timestamp suffix so repeated uploads of the same name do not collide.
type UploadHandler struct {
	baseHandler
	dir string
}

func NewUploadHandler(dir string, adapter *httpcontext.Adapter, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dir:         dir,
	}
}

func (h *UploadHandler) Upload(ctx *fasthttp.RequestCtx) {
	header, err := ctx.FormFile("file")
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing file field"))
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		h.logger.Error("failed to create upload directory", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), "failed to store file"))
		return
	}

	name := storedName(header.Filename)
	dest := filepath.Join(h.dir, name)
	if err := fasthttp.SaveMultipartFile(header, dest); err != nil {
		h.logger.Error("failed to save uploaded file", zap.String("name", header.Filename), zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), "failed to store file"))
		return
	}

	h.logger.Info("file uploaded", zap.String("path", dest), zap.Int64("size", header.Size))
	h.respondSuccess(ctx, http.StatusOK, transport.UploadResult{
		Message: "File uploaded successfully.",
		Path:    dest,
	})
}

// storedName keeps the base name and extension, inserting an upload
// timestamp between them.
func storedName(original string) string {
	ext := filepath.Ext(original)
	base := original[:len(original)-len(ext)]
	return fmt.Sprintf("%s-%d%s", filepath.Base(base), time.Now().UnixMilli(), ext)
}
