package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joy095/shareit/models/shared_models"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator:
//
//	timestamp  a string accepted by shared_models.ParseTimestamp
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
			_, parseErr := shared_models.ParseTimestamp(fl.Field().String())
			return parseErr == nil
		})
	})
	return err
}

// BindingError turns a gin binding error into a validation error whose
// message names the offending JSON fields.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validationf("Invalid request body: %v", err)
	}

	msg := "Invalid request body:"
	for i, fe := range verrs {
		if i > 0 {
			msg += ","
		}
		msg += fmt.Sprintf(" %s failed on '%s'", fe.Field(), fe.Tag())
	}
	return Validationf("%s", msg)
}
