// Package actions is the lookup table behind remote action execution.
//
// A Component is a named, zero-argument constructible type together with
// the actions it serves. An Action is keyed by its name and its parameter
// type signature, so a component may overload a name:
//
//	repository
//	└── "echo"      New() → *Echo
//	    ├── ping()            → string
//	    ├── echo(string)      → string
//	    └── add(int, int)     → int
//
// Components are registered at startup with AddComponent and resolved per
// request with Resolve, which fails with NoSuchComponentError,
// NoSuchActionError or NoCompatibleMethodError.
//
// # Type names
//
// Descriptors carry parameter types by name. The TypeRegistry maps them to
// Go types:
//
//	byte  short  int    long   float    double   boolean  char       string
//	int8  int16  int32  int64  float32  float64  bool     actions.Char  string
//
// Primitive names resolve the same with or without the ".class" suffix, a
// "[]" suffix resolves to a slice, and unknown names fail with
// NoSuchTypeError.
//
// # Argument values
//
// Each argument value is a JSON document decoded against its declared type.
// Numbers are range checked ("300" is not a byte), numeric strings are
// accepted for numeric types, and structured values go through
// encoding/json.
//
// # Building actions
//
// Func0/Func1/Func2 and Proc1/Proc2 wrap typed methods so the signature
// is derived from Go types:
//
//	actions.Func2("add", (*Echo).Add) // add(int, int) int
package actions
