package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/action-agent/api/v1"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}

	switch srvErrors.Kind(err) {
	case srvErrors.KindNoSuchComponent,
		srvErrors.KindNoSuchAction,
		srvErrors.KindNoCompatibleMethod,
		srvErrors.KindNoSuchResource:
		return http.StatusNotFound
	case srvErrors.KindArgumentDeserialization,
		srvErrors.KindNoSuchType,
		srvErrors.KindInvalidArgument,
		srvErrors.KindUnsupportedEvent:
		return http.StatusBadRequest
	case srvErrors.KindAgentUnauthorized:
		return http.StatusUnauthorized
	case srvErrors.KindIncorrectProcessorState,
		srvErrors.KindIncorrectScenarioType,
		srvErrors.KindComponentAlreadyDefined:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		zap.S().Named("handler").Errorw("request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, v1.Error{Error: err.Error(), Kind: srvErrors.Kind(err)})
}

// bindJSON binds the body and answers 400 on failure. Unknown argument type
// names are reported with their own kind.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == typeNameTag {
				respondError(c, srvErrors.NewNoSuchTypeError(fe.Value().(string)))
				return false
			}
		}
	}

	c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body: " + err.Error(), Kind: srvErrors.KindInvalidArgument})
	return false
}
