package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/store"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

var _ = Describe("ConfigurationStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
		Expect(s.Migrate(ctx)).To(Succeed())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Get", func() {
		// Given an empty configuration store
		// When we try to get the configuration
		// Then it should return a not found error
		It("should return not found when no configuration exists", func() {
			// Act
			_, err := s.Configuration().Get(ctx)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given a saved configuration in the store
		// When we retrieve the configuration
		// Then it should return the saved agent id
		It("should return saved configuration", func() {
			// Arrange
			Expect(s.Configuration().Save(ctx, &models.Configuration{AgentID: "agent-1"})).To(Succeed())

			// Act
			retrieved, err := s.Configuration().Get(ctx)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.AgentID).To(Equal("agent-1"))
		})
	})

	Context("Save", func() {
		// Given existing configuration in the store
		// When we save a new configuration
		// Then it should update the existing record
		It("should upsert existing configuration", func() {
			// Arrange
			Expect(s.Configuration().Save(ctx, &models.Configuration{AgentID: "agent-1"})).To(Succeed())

			// Act
			err := s.Configuration().Save(ctx, &models.Configuration{AgentID: "agent-2"})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			retrieved, err := s.Configuration().Get(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.AgentID).To(Equal("agent-2"))
		})
	})
})
