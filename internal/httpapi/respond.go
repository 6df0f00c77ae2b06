package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ricardofn/wagate/internal/fault"
)

// ok writes the success envelope, merging extra payload keys.
func ok(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// fail writes the failure envelope with the given status.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failErr maps a fault kind to an HTTP status. Bridge rejections propagate
// the remote status code and body instead of a generic failure.
func failErr(c *gin.Context, err error) {
	var f *fault.Fault
	if !errors.As(err, &f) {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	switch f.Kind {
	case fault.Validation:
		fail(c, http.StatusBadRequest, f.Msg)
	case fault.NotFound:
		fail(c, http.StatusNotFound, f.Msg)
	case fault.BridgeRejected:
		msg := f.Msg
		if f.Body != "" {
			msg = f.Body
		}
		fail(c, f.StatusCode, msg)
	case fault.BridgeUnavailable:
		msg := f.Msg
		if f.Err != nil {
			msg += ": " + f.Err.Error()
		}
		fail(c, http.StatusInternalServerError, msg)
	default:
		fail(c, http.StatusInternalServerError, f.Msg)
	}
}
