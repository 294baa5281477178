package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	v1 "github.com/kubev2v/action-agent/api/v1"
	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// InitializeAction creates a resource for a component
// (PUT /actions)
func (h *Handler) InitializeAction(c *gin.Context) {
	var req v1.InitializeRequest
	if !bindJSON(c, &req) {
		return
	}

	handle, err := h.actionSrv.Initialize(c.Request.Context(), req.Session(), req.ToDescriptor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.ResourceResponse{ResourceId: uint64(handle)})
}

// ExecuteAction runs an action of a live resource
// (POST /actions/execute)
func (h *Handler) ExecuteAction(c *gin.Context) {
	var req v1.ExecuteRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.actionSrv.Execute(c.Request.Context(), req.Session(), req.Handle(), req.ToDescriptor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.ActionResult{ActionResult: result})
}

// DeleteAction drops a resource
// (DELETE /actions)
func (h *Handler) DeleteAction(c *gin.Context) {
	params, err := bindDeleteActionParams(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	removed, err := h.actionSrv.Deinitialize(c.Request.Context(), v1.SessionOrDefault(params.SessionId), models.Handle(params.ResourceId))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.DeleteResourceResponse{
		ResourceId: uint64(removed),
		Status:     v1.DeleteResourceResponseStatusDeleted,
	})
}

func bindDeleteActionParams(query url.Values) (v1.DeleteActionParams, error) {
	var params v1.DeleteActionParams

	if err := runtime.BindQueryParameter("form", true, false, "sessionId", query, &params.SessionId); err != nil {
		return params, srvErrors.NewInvalidArgumentError("invalid format for parameter sessionId: %v", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "resourceId", query, &params.ResourceId); err != nil {
		return params, srvErrors.NewInvalidArgumentError("invalid format for parameter resourceId: %v", err)
	}

	return params, nil
}

// ListComponents returns the component catalogue
// (GET /components)
func (h *Handler) ListComponents(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewComponentList(h.actionSrv.Components()))
}
