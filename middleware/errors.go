package middleware

import (
	"errors"
	"log"

	"notekeeper/model"
	"notekeeper/utils"

	"github.com/gin-gonic/gin"
)

// ErrorStage turns an error into a response. It returns false to hand the
// error to the next stage untouched.
type ErrorStage func(c *gin.Context, err error) bool

// DefaultErrorStages is the order errors are translated in.
var DefaultErrorStages = []ErrorStage{
	MalformedIDStage,
	ValidationStage,
	UnexpectedStage,
}

// ErrorHandler runs once after the route handler. It translates the last
// error recorded with c.Error, unless the handler already responded.
func ErrorHandler(stages ...ErrorStage) gin.HandlerFunc {
	if len(stages) == 0 {
		stages = DefaultErrorStages
	}
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		for _, stage := range stages {
			if stage(c, last.Err) {
				return
			}
		}
	}
}

func MalformedIDStage(c *gin.Context, err error) bool {
	if !errors.Is(err, model.ErrMalformedID) {
		return false
	}
	utils.BadRequest(c, "Malformatted id")
	return true
}

func ValidationStage(c *gin.Context, err error) bool {
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	utils.BadRequest(c, ve.Message)
	return true
}

// UnexpectedStage is the catch-all; it always responds.
func UnexpectedStage(c *gin.Context, err error) bool {
	log.Printf("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	utils.TrackError("unexpected", c.FullPath())
	utils.InternalError(c, "internal server error")
	return true
}
