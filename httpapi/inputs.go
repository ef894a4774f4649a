package httpapi

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jacentio/lattice/fault"
)

// validate is the package validator instance, configured in init with the
// name character rule shared by usernames, folders, and lists.
var validate *validator.Validate

var nameChars = regexp.MustCompile(`^[a-zA-Z0-9\-_ ]+$`)

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("namechars", func(fl validator.FieldLevel) bool {
		return nameChars.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// nullableString distinguishes an absent JSON field from an explicit null.
// Set is true when the field was present; a null leaves Value empty.
type nullableString struct {
	Set   bool
	Value string
}

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = ""
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

type registerInput struct {
	Username string `json:"username" validate:"required,min=4,max=24,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=24"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createFolderInput struct {
	Name        string `json:"name" validate:"required,min=2,max=25,namechars"`
	Description string `json:"description" validate:"omitempty,max=100"`
	Image       string `json:"image"`
}

type updateFolderInput struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=25,namechars"`
	Description *string `json:"description" validate:"omitempty,max=100"`
	Image       *string `json:"image"`
}

type createListInput struct {
	Name      string `json:"name" validate:"required,min=2,max=25,namechars"`
	Image     string `json:"image"`
	Container string `json:"container"`
}

type updateListInput struct {
	Name      *string        `json:"name" validate:"omitempty,min=2,max=25,namechars"`
	Image     *string        `json:"image"`
	Container nullableString `json:"container" validate:"-"`
}

type createTodoInput struct {
	Description string `json:"description" validate:"required,min=1"`
	Checked     bool   `json:"checked"`
}

type updateTodoInput struct {
	Description *string `json:"description" validate:"omitempty,min=1"`
	Checked     *bool   `json:"checked"`
}

type sendMailInput struct {
	Message string `json:"message" validate:"required"`
}

// decodeInput parses the request body into dst, rejecting unknown fields,
// then validates it. Validation reports every violated rule at once.
func decodeInput(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fault.Invalid("Request body must be valid JSON with only the expected fields")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); !ok {
			return fault.Transient(err)
		}
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
		return fault.Invalid(messages...)
	}
	return nil
}

func asValidationErrors(err error, dst *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*dst = verrs
	}
	return ok
}

// fieldMessage renders one human-readable message per violated rule.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must contain at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must contain at most %s characters", field, fe.Param())
	case "alphanum", "namechars":
		return fmt.Sprintf("%s must only contain alphanumeric characters", field)
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}
