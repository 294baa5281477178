package components_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/pkg/actions"
	"github.com/kubev2v/action-agent/pkg/actions/components"
)

var _ = Describe("Built-in components", func() {
	var (
		repo *actions.Repository
		root string
	)

	// call resolves, instantiates and invokes an action the way a remote call does.
	call := func(component, action string, types, values []string) (any, error) {
		c, a, err := repo.Resolve(component, action, types)
		if err != nil {
			return nil, err
		}
		instance, err := repo.Instantiate(c)
		if err != nil {
			return nil, err
		}
		args, err := repo.Types().DecodeAll(types, values)
		if err != nil {
			return nil, err
		}
		return a.Fn(instance, args)
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		repo = actions.NewRepository(actions.NewTypeRegistry())
		Expect(components.Register(repo, root)).To(Succeed())
	})

	It("should register every component once", func() {
		names := []string{}
		for _, c := range repo.Components() {
			names = append(names, c.Name)
		}
		Expect(names).To(Equal([]string{"echo", "filesystem", "system"}))
		Expect(components.Register(repo, root)).NotTo(Succeed())
	})

	Context("echo", func() {
		It("should answer ping with pong", func() {
			Expect(call("echo", "ping", nil, nil)).To(Equal("pong"))
		})

		It("should echo its argument", func() {
			Expect(call("echo", "echo", []string{"java.lang.String"}, []string{`"hi"`})).To(Equal("hi"))
		})

		It("should add two ints", func() {
			Expect(call("echo", "add", []string{"int", "int.class"}, []string{"2", "3"})).To(Equal(int32(5)))
		})

		It("should return the failure message as error", func() {
			_, err := call("echo", "fail", []string{"string"}, []string{`"expected failure"`})
			Expect(err).To(MatchError("expected failure"))
		})
	})

	Context("filesystem", func() {
		// Given an empty root
		// When a file is created, read, listed and deleted
		// Then each action observes the previous one
		It("should manage files below the root", func() {
			_, err := call("filesystem", "createFile", []string{"string", "string"}, []string{`"dir/a.txt"`, `"content"`})
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Join(root, "dir", "a.txt")).To(BeAnExistingFile())

			Expect(call("filesystem", "readFile", []string{"string"}, []string{`"dir/a.txt"`})).To(Equal("content"))
			Expect(call("filesystem", "doesFileExist", []string{"string"}, []string{`"dir/a.txt"`})).To(BeTrue())
			Expect(call("filesystem", "listDirectory", []string{"string"}, []string{`"dir"`})).To(Equal([]string{"a.txt"}))

			_, err = call("filesystem", "deleteFile", []string{"string"}, []string{`"dir/a.txt"`})
			Expect(err).NotTo(HaveOccurred())
			Expect(call("filesystem", "doesFileExist", []string{"string"}, []string{`"dir/a.txt"`})).To(BeFalse())
		})

		It("should fail to read a missing file", func() {
			_, err := call("filesystem", "readFile", []string{"string"}, []string{`"nope"`})
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Context("system", func() {
		It("should report a positive cpu count", func() {
			n, err := call("system", "getCpuCount", nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeNumerically(">", 0))
		})

		It("should read environment variables", func() {
			GinkgoT().Setenv("ACTION_AGENT_TEST_VAR", "value")
			Expect(call("system", "getEnvironmentVariable", []string{"string"}, []string{`"ACTION_AGENT_TEST_VAR"`})).To(Equal("value"))
		})

		It("should report memory usage", func() {
			usage, err := call("system", "getMemoryUsage", nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(usage.(components.MemoryUsage).Total).To(BeNumerically(">", 0))
		})
	})
})
