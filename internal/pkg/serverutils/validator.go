package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest parses the JSON body into req and runs the validate
// struct tags, returning a 400 AppError describing the first problems.
func ValidateRequest(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return NewBadRequestError("Invalid request body")
	}
	return ValidateStruct(req)
}

func ValidateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewBadRequestError("Invalid request")
	}

	var problems []string
	for _, fieldErr := range validationErrs {
		problems = append(problems, fmt.Sprintf("%s failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
	}
	return NewBadRequestError("Validation failed: " + strings.Join(problems, ", "))
}
