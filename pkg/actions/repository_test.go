package actions_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/pkg/actions"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

type counter struct {
	n int64
}

func (c *counter) Inc() (int64, error) {
	c.n++
	return c.n, nil
}

func (c *counter) IncBy(delta int64) (int64, error) {
	c.n += delta
	return c.n, nil
}

func (c *counter) IncByName(name string) (int64, error) {
	c.n += int64(len(name))
	return c.n, nil
}

func counterComponent() actions.Component {
	return actions.Component{
		Name: "counter",
		New:  func() (any, error) { return &counter{}, nil },
		Actions: []actions.Action{
			actions.Func0("inc", (*counter).Inc),
			actions.Func1("inc", (*counter).IncBy),
			actions.Func1("inc", (*counter).IncByName),
		},
	}
}

var _ = Describe("Repository", func() {
	var repo *actions.Repository

	BeforeEach(func() {
		repo = actions.NewRepository(actions.NewTypeRegistry())
		Expect(repo.AddComponent(counterComponent())).To(Succeed())
	})

	Context("AddComponent", func() {
		It("should reject a component defined twice", func() {
			err := repo.AddComponent(counterComponent())
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsComponentAlreadyDefinedError(err)).To(BeTrue())
		})

		It("should reject a component without constructor", func() {
			err := repo.AddComponent(actions.Component{Name: "broken"})
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
		})

		It("should reject an action with an unknown parameter type", func() {
			err := repo.AddComponent(actions.Component{
				Name: "widgets",
				New:  func() (any, error) { return nil, nil },
				Actions: []actions.Action{{
					Name:       "spin",
					ParamTypes: []string{"com.acme.Widget"},
					Fn:         func(any, []any) (any, error) { return nil, nil },
				}},
			})
			Expect(srvErrors.IsNoSuchTypeError(err)).To(BeTrue())
		})
	})

	Context("Resolve", func() {
		// Given a component overloading "inc"
		// When it is resolved with each signature
		// Then the matching overload is returned
		It("should pick the overload matching the parameter types", func() {
			_, a, err := repo.Resolve("counter", "inc", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ParamTypes).To(BeEmpty())

			_, a, err = repo.Resolve("counter", "inc", []string{"long.class"})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ParamTypes).To(Equal([]string{"long"}))

			_, a, err = repo.Resolve("counter", "inc", []string{"java.lang.String"})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ParamTypes).To(Equal([]string{"string"}))
		})

		It("should fail with NoSuchComponent", func() {
			_, _, err := repo.Resolve("missing", "inc", nil)
			Expect(srvErrors.IsNoSuchComponentError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("missing"))
		})

		It("should fail with NoSuchAction", func() {
			_, _, err := repo.Resolve("counter", "dec", nil)
			Expect(srvErrors.IsNoSuchActionError(err)).To(BeTrue())
		})

		It("should fail with NoCompatibleMethod", func() {
			_, _, err := repo.Resolve("counter", "inc", []string{"boolean"})
			Expect(srvErrors.IsNoCompatibleMethodError(err)).To(BeTrue())
		})

		It("should call the resolved action", func() {
			c, a, err := repo.Resolve("counter", "inc", []string{"long"})
			Expect(err).NotTo(HaveOccurred())
			instance, err := repo.Instantiate(c)
			Expect(err).NotTo(HaveOccurred())

			result, err := a.Fn(instance, []any{int64(5)})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(int64(5)))
		})

		It("should reject an argument of the wrong Go type", func() {
			c, a, err := repo.Resolve("counter", "inc", []string{"long"})
			Expect(err).NotTo(HaveOccurred())
			instance, err := repo.Instantiate(c)
			Expect(err).NotTo(HaveOccurred())

			_, err = a.Fn(instance, []any{"five"})
			Expect(srvErrors.IsArgumentDeserializationError(err)).To(BeTrue())
		})
	})

	Context("Instantiate", func() {
		It("should wrap constructor errors", func() {
			c := actions.Component{Name: "faulty", New: func() (any, error) { return nil, errors.New("no disk") }}

			_, err := repo.Instantiate(c)

			Expect(srvErrors.IsInstantiationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("no disk"))
		})

		It("should recover constructor panics", func() {
			c := actions.Component{Name: "faulty", New: func() (any, error) { panic("boom") }}

			_, err := repo.Instantiate(c)

			Expect(srvErrors.IsInstantiationError(err)).To(BeTrue())
		})
	})

	Context("Components", func() {
		It("should list actions with their signatures", func() {
			infos := repo.Components()
			Expect(infos).To(HaveLen(1))
			Expect(infos[0].Name).To(Equal("counter"))
			Expect(infos[0].Actions).To(HaveLen(3))
			Expect(infos[0].Actions[0]).To(Equal(actions.ActionInfo{Name: "inc", ParamTypes: []string{}, ReturnType: "long"}))
		})
	})
})
