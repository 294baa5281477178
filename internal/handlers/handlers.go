package handlers

import (
	"context"
	"io"
	"time"

	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/services"
	"github.com/kubev2v/action-agent/pkg/actions"
)

type ActionService interface {
	Initialize(ctx context.Context, sessionID string, d models.ActionDescriptor) (models.Handle, error)
	Execute(ctx context.Context, sessionID string, h models.Handle, d models.ActionDescriptor) (any, error)
	Deinitialize(ctx context.Context, sessionID string, h models.Handle) (models.Handle, error)
	DeinitializeSession(ctx context.Context, sessionID string) []models.Handle
	ListResources(sessionID string) []models.ResourceInfo
	LiveResources() int
	Components() []actions.ComponentInfo
}

type EventService interface {
	Process(ctx context.Context, req models.EventRequest) (models.ProcessorState, error)
	State() models.ProcessorState
	JoinTestcase(ctx context.Context, sessionID string, runID, testcaseID int64) (models.ProcessorState, error)
	LeaveTestcase(ctx context.Context, sessionID string) ([]models.Handle, models.ProcessorState, error)
}

type ReportService interface {
	ListRuns(ctx context.Context, params services.RunListParams) ([]models.Run, error)
	GetRun(ctx context.Context, id int64) (*models.Run, error)
	Testcases(ctx context.Context, runID int64) ([]models.Testcase, error)
	Report(ctx context.Context, runID int64, w io.Writer) error
}

// AgentInfo is the static part of the agent status.
type AgentInfo struct {
	ID        string
	Version   string
	StartedAt time.Time
}

type Handler struct {
	agent     AgentInfo
	actionSrv ActionService
	eventSrv  EventService
	reportSrv ReportService
}

func New(agent AgentInfo, actionSrv ActionService, eventSrv EventService, reportSrv ReportService) *Handler {
	return &Handler{
		agent:     agent,
		actionSrv: actionSrv,
		eventSrv:  eventSrv,
		reportSrv: reportSrv,
	}
}
