package services_test

import (
	"bytes"
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/action-agent/internal/lifecycle"
	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/services"
	"github.com/kubev2v/action-agent/internal/store"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

var _ = Describe("ReportService", func() {
	var (
		ctx   context.Context
		db    *sql.DB
		st    *store.Store
		srv   *services.ReportService
		runID int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, st = newStore(ctx)
		srv = services.NewReportService(st)

		p := lifecycle.NewProcessor(st.EventLog())
		for _, e := range []models.Event{
			models.StartRun{RunName: "nightly", ProductName: "agent"},
			models.AddRunMetainfo{Key: "branch", Value: "main"},
			models.StartSuite{SuiteName: "transfer"},
			models.StartTestCase{TestcaseName: "upload"},
			models.StartLoadQueue{Name: "q1", ThreadCount: 1},
			models.InsertCheckpoint{LoadQueue: "q1", Name: "put", ResponseTime: 20, TransferSize: 10, Result: models.ResultPassed},
			models.InsertMessage{Level: "INFO", Message: "uploading"},
			models.EndTestCase{Result: models.ResultPassed},
		} {
			state, err := p.Process(ctx, models.EventRequest{Event: e})
			Expect(err).NotTo(HaveOccurred())
			runID = state.RunID
		}
	})

	AfterEach(func() {
		db.Close()
	})

	It("should list and filter runs", func() {
		runs, err := srv.ListRuns(ctx, services.RunListParams{Name: "NIGHT"})
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))

		runs, err = srv.ListRuns(ctx, services.RunListParams{Name: "weekly"})
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(BeEmpty())
	})

	It("should return a run with its metainfo", func() {
		run, err := srv.GetRun(ctx, runID)
		Expect(err).NotTo(HaveOccurred())
		Expect(run.Name).To(Equal("nightly"))
		Expect(run.Metainfo).To(HaveKeyWithValue("branch", "main"))
	})

	It("should return not found for unknown runs", func() {
		_, err := srv.GetRun(ctx, runID+100)
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

		err = srv.Report(ctx, runID+100, &bytes.Buffer{})
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	// Given a run with a testcase, a checkpoint and a message
	// When the report is written
	// Then every sheet carries its rows
	It("should write an xlsx workbook", func() {
		// Arrange
		buf := &bytes.Buffer{}

		// Act
		err := srv.Report(ctx, runID, buf)

		// Assert
		Expect(err).NotTo(HaveOccurred())

		f, err := excelize.OpenReader(buf)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(f.GetSheetList()).To(Equal([]string{"Run", "Testcases", "Checkpoints", "Messages"}))

		name, err := f.GetCellValue("Run", "B2")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("nightly"))

		rows, err := f.GetRows("Testcases")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[1][3]).To(Equal("upload"))
		Expect(rows[1][4]).To(Equal("PASSED"))

		rows, err = f.GetRows("Checkpoints")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[1][2]).To(Equal("put"))

		rows, err = f.GetRows("Messages")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[1][5]).To(Equal("uploading"))
	})
})
