package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"go-socialnet/internal/loader"
	resp "go-socialnet/internal/transport/http/response"
)

// UploadField is the multipart field carrying the CSV file.
const UploadField = "file"

type LoadOut struct {
	loader.Report
	OK bool `json:"ok"`
}

func (h *Social) LoadUsers(c *gin.Context, _ *struct{}) (LoadOut, error) {
	return h.load(c, h.loader.ImportUsers)
}

func (h *Social) LoadStatusUpdates(c *gin.Context, _ *struct{}) (LoadOut, error) {
	return h.load(c, h.loader.ImportStatusUpdates)
}

// load answers with the report even when rows failed; only a missing or
// unreadable upload is an error.
func (h *Social) load(c *gin.Context, run func(context.Context, io.Reader) loader.Report) (LoadOut, error) {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return LoadOut{}, resp.BadRequest("missing upload field " + UploadField)
	}
	f, err := fh.Open()
	if err != nil {
		return LoadOut{}, resp.Internal("open upload", err)
	}
	defer f.Close()

	rep := run(c.Request.Context(), f)
	return LoadOut{Report: rep, OK: rep.OK()}, nil
}
