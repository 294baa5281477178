package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	v1 "github.com/kubev2v/action-agent/api/v1"
	"github.com/kubev2v/action-agent/internal/services"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ListRuns returns the persisted runs, newest first
// (GET /runs)
func (h *Handler) ListRuns(c *gin.Context) {
	var params v1.ListRunsParams
	query := c.Request.URL.Query()
	for name, dest := range map[string]any{
		"name":     &params.Name,
		"onlyOpen": &params.OnlyOpen,
		"page":     &params.Page,
		"pageSize": &params.PageSize,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			respondError(c, srvErrors.NewInvalidArgumentError("invalid format for parameter %s: %v", name, err))
			return
		}
	}

	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}

	svcParams := services.RunListParams{
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}
	if params.Name != nil {
		svcParams.Name = *params.Name
	}
	if params.OnlyOpen != nil {
		svcParams.OnlyOpen = *params.OnlyOpen
	}

	runs, err := h.reportSrv.ListRuns(c.Request.Context(), svcParams)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := v1.RunList{Page: page, Runs: make([]v1.Run, 0, len(runs))}
	for _, r := range runs {
		resp.Runs = append(resp.Runs, v1.NewRunFromModel(r))
	}

	c.JSON(http.StatusOK, resp)
}

// GetRun returns a run with its testcases
// (GET /runs/{id})
func (h *Handler) GetRun(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	run, err := h.reportSrv.GetRun(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	testcases, err := h.reportSrv.Testcases(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := v1.RunDetails{Run: v1.NewRunFromModel(*run), Testcases: make([]v1.Testcase, 0, len(testcases))}
	for _, tc := range testcases {
		resp.Testcases = append(resp.Testcases, v1.NewTestcaseFromModel(tc))
	}

	c.JSON(http.StatusOK, resp)
}

// GetRunReport returns the run as an XLSX workbook
// (GET /runs/{id}/report)
func (h *Handler) GetRunReport(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	buf := &bytes.Buffer{}
	if err := h.reportSrv.Report(c.Request.Context(), id, buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=run-%d.xlsx", id))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func runID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondError(c, srvErrors.NewInvalidArgumentError("invalid format for parameter id: %v", err))
		return 0, false
	}
	return id, true
}
