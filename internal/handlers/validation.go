package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kubev2v/action-agent/pkg/actions"
)

const typeNameTag = "typename"

// RegisterValidations adds the typename rule to gin's validator. A field
// passes when the type registry resolves its value.
func RegisterValidations(types *actions.TypeRegistry) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	return v.RegisterValidation(typeNameTag, func(fl validator.FieldLevel) bool {
		_, _, err := types.Canonical(fl.Field().String())
		return err == nil
	})
}
