package api

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidations adds the custom binding tags to gin's validator.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("oneofci", oneOfFold)
	})
}

// oneOfFold is oneof that ignores case and surrounding space, matching how the
// scorer reads the value.
func oneOfFold(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	for _, allowed := range strings.Fields(fl.Param()) {
		if strings.EqualFold(value, allowed) {
			return true
		}
	}
	return false
}
