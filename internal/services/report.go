package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/store"
)

const (
	sheetRun         = "Run"
	sheetTestcases   = "Testcases"
	sheetCheckpoints = "Checkpoints"
	sheetMessages    = "Messages"
)

type RunListParams struct {
	Name     string
	OnlyOpen bool
	Limit    uint64
	Offset   uint64
}

// ReportService reads back what the event processor persisted.
type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

func (r *ReportService) ListRuns(ctx context.Context, params RunListParams) ([]models.Run, error) {
	opts := []store.ListOption{}
	if params.Name != "" {
		opts = append(opts, store.ByName(params.Name))
	}
	if params.OnlyOpen {
		opts = append(opts, store.OnlyOpen())
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}
	return r.store.Runs().List(ctx, opts...)
}

func (r *ReportService) GetRun(ctx context.Context, id int64) (*models.Run, error) {
	return r.store.Runs().Get(ctx, id)
}

func (r *ReportService) Testcases(ctx context.Context, runID int64) ([]models.Testcase, error) {
	if _, err := r.store.Runs().Get(ctx, runID); err != nil {
		return nil, err
	}
	return r.store.Testcases().ListByRun(ctx, runID)
}

// Report writes the run as an XLSX workbook.
func (r *ReportService) Report(ctx context.Context, runID int64, w io.Writer) error {
	run, err := r.store.Runs().Get(ctx, runID)
	if err != nil {
		return err
	}
	testcases, err := r.store.Testcases().ListByRun(ctx, runID)
	if err != nil {
		return err
	}
	queues, err := r.store.LoadQueues().ListByRun(ctx, runID)
	if err != nil {
		return err
	}
	messages, err := r.store.Messages().ListByRun(ctx, runID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Named("report_service").Warnw("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetRun); err != nil {
		return err
	}
	for _, name := range []string{sheetTestcases, sheetCheckpoints, sheetMessages} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := writeRows(f, sheetRun, runRows(run)); err != nil {
		return err
	}

	rows := [][]any{{"ID", "Suite", "Scenario", "Name", "Result", "Start", "End", "Note"}}
	for _, tc := range testcases {
		rows = append(rows, []any{tc.ID, tc.SuiteName, tc.ScenarioName, tc.Name, tc.Result.String(), formatTime(tc.StartTime), formatTimePtr(tc.EndTime), tc.UserNote})
	}
	if err := writeRows(f, sheetTestcases, rows); err != nil {
		return err
	}

	rows = [][]any{{"Load queue", "Testcase", "Checkpoint", "Count", "Passed", "Avg response (ms)", "Transfer (bytes)"}}
	for _, q := range queues {
		summaries, err := r.store.LoadQueues().Summaries(ctx, q.ID)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			rows = append(rows, []any{q.Name, q.TestcaseID, s.Name, s.Count, s.Passed, s.AvgResponseTime, s.TotalTransfer})
		}
	}
	if err := writeRows(f, sheetCheckpoints, rows); err != nil {
		return err
	}

	rows = [][]any{{"Time", "Level", "Thread", "Host", "Testcase", "Message"}}
	for _, m := range messages {
		var tc any
		if m.TestcaseID != nil {
			tc = *m.TestcaseID
		}
		rows = append(rows, []any{formatTime(m.Timestamp), m.Level, m.Thread, m.HostName, tc, m.Message})
	}
	if err := writeRows(f, sheetMessages, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	_, err = f.WriteTo(w)
	return err
}

func runRows(run *models.Run) [][]any {
	rows := [][]any{
		{"ID", run.ID},
		{"Name", run.Name},
		{"Product", run.ProductName},
		{"Version", run.VersionName},
		{"Build", run.BuildName},
		{"OS", run.OSName},
		{"Host", run.HostName},
		{"Start", formatTime(run.StartTime)},
		{"End", formatTimePtr(run.EndTime)},
		{"Note", run.UserNote},
	}
	keys := make([]string, 0, len(run.Metainfo))
	for k := range run.Metainfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []any{k, run.Metainfo[k]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
