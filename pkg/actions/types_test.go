package actions_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/pkg/actions"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

var _ = Describe("TypeRegistry", func() {
	var types *actions.TypeRegistry

	BeforeEach(func() {
		types = actions.NewTypeRegistry()
	})

	Context("Canonical", func() {
		DescribeTable("should resolve qualified and bare primitive names identically",
			func(bare string) {
				b, bt, err := types.Canonical(bare)
				Expect(err).NotTo(HaveOccurred())

				q, qt, err := types.Canonical(bare + ".class")
				Expect(err).NotTo(HaveOccurred())
				Expect(q).To(Equal(b))
				Expect(qt).To(Equal(bt))
			},
			Entry("byte", "byte"),
			Entry("short", "short"),
			Entry("int", "int"),
			Entry("long", "long"),
			Entry("float", "float"),
			Entry("double", "double"),
			Entry("boolean", "boolean"),
			Entry("char", "char"),
		)

		It("should map string aliases to the same name", func() {
			for _, n := range []string{"java.lang.String", "String", "string"} {
				c, _, err := types.Canonical(n)
				Expect(err).NotTo(HaveOccurred())
				Expect(c).To(Equal("string"))
			}
		})

		It("should resolve array suffixes", func() {
			c, typ, err := types.Canonical("java.lang.String[]")
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal("string[]"))
			Expect(typ.String()).To(Equal("[]string"))
		})

		It("should fail with NoSuchType for unknown names", func() {
			_, _, err := types.Canonical("com.acme.Widget")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsNoSuchTypeError(err)).To(BeTrue())
		})
	})

	Context("Decode", func() {
		DescribeTable("should decode values into the declared type",
			func(typeName, raw string, expected any) {
				v, err := types.Decode(typeName, raw)
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(Equal(expected))
			},
			Entry("int", "int", "42", int32(42)),
			Entry("int.class", "int.class", "42", int32(42)),
			Entry("numeric string", "long", `"7"`, int64(7)),
			Entry("byte", "byte", "-128", int8(-128)),
			Entry("double", "double", "2.5", 2.5),
			Entry("boolean", "boolean", "true", true),
			Entry("char", "char", `"x"`, actions.Char('x')),
			Entry("string", "java.lang.String", `"hello"`, "hello"),
			Entry("null string", "String", "null", ""),
			Entry("string array", "String[]", `["a","b"]`, []string{"a", "b"}),
			Entry("int array", "int[]", `[1,2]`, []int32{1, 2}),
			Entry("char array", "char[]", `["a","b"]`, []actions.Char{'a', 'b'}),
			Entry("numeric strings in long array", "long[]", `["3",4]`, []int64{3, 4}),
			Entry("empty array", "short[]", `[]`, []int16{}),
		)

		DescribeTable("should reject values that do not fit the declared type",
			func(typeName, raw string) {
				_, err := types.Decode(typeName, raw)
				Expect(err).To(HaveOccurred())
				Expect(srvErrors.IsArgumentDeserializationError(err)).To(BeTrue())
			},
			Entry("byte overflow", "byte", "300"),
			Entry("fraction for int", "int", "1.5"),
			Entry("string for boolean", "boolean", `"yes"`),
			Entry("number for string", "string", "12"),
			Entry("two chars", "char", `"xy"`),
			Entry("invalid json", "int", "{"),
			Entry("object for array", "string[]", `{"a":1}`),
			Entry("code points for char array", "char[]", `[97,98]`),
			Entry("byte array overflow", "byte[]", `[1,300]`),
			Entry("mixed string array", "string[]", `["a",1]`),
		)
	})

	Context("DecodeAll", func() {
		// Given two declared types and one value
		// When the arguments are decoded
		// Then it fails before decoding anything
		It("should reject count mismatches", func() {
			_, err := types.DecodeAll([]string{"int", "int"}, []string{"1"})
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsArgumentDeserializationError(err)).To(BeTrue())
		})

		It("should decode every position", func() {
			args, err := types.DecodeAll([]string{"int", "string"}, []string{"1", `"a"`})
			Expect(err).NotTo(HaveOccurred())
			Expect(args).To(Equal([]any{int32(1), "a"}))
		})
	})
})
