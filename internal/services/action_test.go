package services_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/registry"
	"github.com/kubev2v/action-agent/internal/services"
	"github.com/kubev2v/action-agent/pkg/actions"
	"github.com/kubev2v/action-agent/pkg/actions/components"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
	"github.com/kubev2v/action-agent/pkg/scheduler"
)

type sleeper struct {
	release chan struct{}
}

func (s *sleeper) Sleep() (string, error) {
	<-s.release
	return "awake", nil
}

func newActionService(extra ...actions.Component) (*services.ActionService, *scheduler.Scheduler) {
	repo := actions.NewRepository(actions.NewTypeRegistry())
	Expect(components.Register(repo, GinkgoT().TempDir())).To(Succeed())
	for _, c := range extra {
		Expect(repo.AddComponent(c)).To(Succeed())
	}
	sched := scheduler.NewScheduler(2)
	return services.NewActionService(registry.New(repo), repo, sched), sched
}

var _ = Describe("ActionService", func() {
	var (
		ctx     context.Context
		srv     *services.ActionService
		sched   *scheduler.Scheduler
		release chan struct{}
	)

	BeforeEach(func() {
		ctx = context.Background()
		release = make(chan struct{})
		srv, sched = newActionService(actions.Component{
			Name: "sleeper",
			New:  func() (any, error) { return &sleeper{release: release}, nil },
			Actions: []actions.Action{
				actions.Func0("sleep", (*sleeper).Sleep),
			},
		})
	})

	AfterEach(func() {
		sched.Close()
	})

	// Given a resource of the echo component
	// When ping is executed on a worker
	// Then the result is returned to the caller
	It("should execute actions on the scheduler", func() {
		// Arrange
		h, err := srv.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())

		// Act
		result, err := srv.Execute(ctx, "s1", h, models.ActionDescriptor{Component: "echo", Method: "ping"})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("pong"))
	})

	It("should resolve the component from the resource when the descriptor omits it", func() {
		h, err := srv.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())

		result, err := srv.Execute(ctx, "s1", h, models.ActionDescriptor{
			Method:         "add",
			ArgumentTypes:  []string{"int", "int.class"},
			ArgumentValues: []string{"2", "40"},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(int32(42)))
	})

	It("should return registry errors unchanged", func() {
		_, err := srv.Execute(ctx, "s1", 99, models.ActionDescriptor{Component: "echo", Method: "ping"})
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	// Given an action that blocks
	// When the caller stops waiting
	// Then Execute returns the context error and the action completes later
	It("should stop waiting when the caller context is done", func() {
		h, err := srv.Initialize(ctx, "s1", models.ActionDescriptor{Component: "sleeper"})
		Expect(err).NotTo(HaveOccurred())

		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err = srv.Execute(waitCtx, "s1", h, models.ActionDescriptor{Component: "sleeper", Method: "sleep"})
		Expect(err).To(MatchError(context.DeadlineExceeded))

		close(release)
		Eventually(func() (any, error) {
			return srv.Execute(ctx, "s1", h, models.ActionDescriptor{Component: "sleeper", Method: "sleep"})
		}).Should(Equal("awake"))
	})

	It("should deinitialize single resources and whole sessions", func() {
		h1, err := srv.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())
		h2, err := srv.Initialize(ctx, "s1", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())
		_, err = srv.Initialize(ctx, "s2", models.ActionDescriptor{Component: "echo"})
		Expect(err).NotTo(HaveOccurred())
		Expect(srv.LiveResources()).To(Equal(3))

		removed, err := srv.Deinitialize(ctx, "s1", h1)
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(Equal(h1))

		Expect(srv.DeinitializeSession(ctx, "s1")).To(Equal([]models.Handle{h2}))
		Expect(srv.ListResources("s1")).To(BeEmpty())
		Expect(srv.ListResources("s2")).To(HaveLen(1))
	})

	It("should list the component catalogue", func() {
		names := []string{}
		for _, c := range srv.Components() {
			names = append(names, c.Name)
		}
		Expect(names).To(ContainElements("echo", "filesystem", "system", "sleeper"))
	})
})
