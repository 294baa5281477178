package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/internal/lifecycle"
	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/services"
	"github.com/kubev2v/action-agent/internal/store"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
	"github.com/kubev2v/action-agent/pkg/scheduler"
)

func newStore(ctx context.Context) (*sql.DB, *store.Store) {
	db, err := store.NewDB(":memory:")
	Expect(err).NotTo(HaveOccurred())

	st := store.NewStore(db)
	Expect(st.Migrate(ctx)).To(Succeed())
	return db, st
}

var _ = Describe("EventService", func() {
	var (
		ctx     context.Context
		db      *sql.DB
		st      *store.Store
		sched   *scheduler.Scheduler
		actions *services.ActionService
		srv     *services.EventService
	)

	process := func(events ...models.Event) (models.ProcessorState, error) {
		var (
			state models.ProcessorState
			err   error
		)
		for _, e := range events {
			if state, err = srv.Process(ctx, models.EventRequest{Event: e}); err != nil {
				return state, err
			}
		}
		return state, nil
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, st = newStore(ctx)
		actions, sched = newActionService()
		srv = services.NewEventService(lifecycle.NewProcessor(st.EventLog()), actions)
	})

	AfterEach(func() {
		sched.Close()
		db.Close()
	})

	// Given a started run, suite and testcase
	// When events are processed through the service
	// Then they are persisted in the event log
	It("should persist processed events", func() {
		// Arrange & Act
		state, err := process(
			models.StartRun{RunName: "nightly"},
			models.StartSuite{SuiteName: "upload"},
			models.StartTestCase{TestcaseName: "put"},
			models.EndTestCase{Result: models.ResultPassed},
		)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(state.LifeCycle).To(Equal(models.LifeCycleSuiteStarted))
		Expect(srv.State().RunID).To(Equal(state.RunID))

		testcases, err := st.Testcases().ListByRun(ctx, state.RunID)
		Expect(err).NotTo(HaveOccurred())
		Expect(testcases).To(HaveLen(1))
		Expect(testcases[0].Result).To(Equal(models.ResultPassed))
		Expect(testcases[0].SuiteName).To(Equal("upload"))
	})

	It("should reject out of order events", func() {
		_, err := process(models.EndRun{})
		Expect(srvErrors.IsIncorrectProcessorStateError(err)).To(BeTrue())
	})

	// Given a session that kept a resource
	// When it joins and then leaves a testcase
	// Then the resource is released on both boundaries
	It("should release session resources on testcase boundaries", func() {
		// Arrange
		h, err := actions.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())

		// Act
		state, err := srv.JoinTestcase(ctx, "s1", 7, 11)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(state.LifeCycle).To(Equal(models.LifeCycleTestCaseStarted))
		Expect(state.TestcaseID).To(Equal(int64(11)))
		_, err = actions.Execute(ctx, "s1", h, models.ActionDescriptor{Component: "echo", Method: "ping"})
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

		h, err = actions.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())

		released, state, err := srv.LeaveTestcase(ctx, "s1")
		Expect(err).NotTo(HaveOccurred())
		Expect(released).To(Equal([]models.Handle{h}))
		Expect(state.LifeCycle).To(Equal(models.LifeCycleInitialized))
	})

	// Given a session with a resource while a run is in progress
	// When it tries to join a testcase
	// Then the join is rejected and the resource stays usable
	It("should keep session resources when joining is rejected", func() {
		// Arrange
		_, err := process(models.StartRun{RunName: "nightly"})
		Expect(err).NotTo(HaveOccurred())
		h, err := actions.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())

		// Act
		state, err := srv.JoinTestcase(ctx, "s1", 7, 11)

		// Assert
		Expect(srvErrors.IsIncorrectProcessorStateError(err)).To(BeTrue())
		Expect(state.LifeCycle).To(Equal(models.LifeCycleRunStarted))
		Expect(actions.LiveResources()).To(Equal(1))
		_, err = actions.Execute(ctx, "s1", h, models.ActionDescriptor{Component: "echo", Method: "ping"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should release resources even when leaving is rejected", func() {
		_, err := actions.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())

		released, _, err := srv.LeaveTestcase(ctx, "s1")
		Expect(srvErrors.IsIncorrectProcessorStateError(err)).To(BeTrue())
		Expect(released).To(HaveLen(1))
		Expect(actions.LiveResources()).To(BeZero())
	})
})
