package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/model"
	"github.com/maxmalik/FORE/session"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const (
	BackendValidationMessage = "Validation error occurred on backend."
	UnexpectedErrorMessage   = "Unexpected error occurred. Please try again later."
)

// FormError lists everything wrong with a submitted form.
type FormError struct {
	Messages []string
}

func (e *FormError) Error() string {
	var sb strings.Builder
	sb.WriteString("Validation failed:\n")
	for _, m := range e.Messages {
		sb.WriteString("- ")
		sb.WriteString(m)
		sb.WriteString("\n")
	}
	return sb.String()
}

// AlertMessage turns an error from Login or Register into the message shown
// to the user.
func AlertMessage(err error) string {
	var formErr *FormError
	if errors.As(err, &formErr) {
		return formErr.Error()
	}

	var apiErr *golf.APIError
	if !errors.As(err, &apiErr) {
		return UnexpectedErrorMessage
	}
	switch apiErr.Status {
	case 422:
		return BackendValidationMessage
	case 401, 404, 409:
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("Error: Server returned code %d with no detail", apiErr.Status)
	default:
		return UnexpectedErrorMessage
	}
}

type LoginForm struct {
	UsernameOrEmail string
	Password        string
}

type RegisterForm struct {
	Name                 string
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// fieldMessages maps a form field and the JSON schema rule it broke to the
// message shown for it.
type fieldMessages map[string]map[string]string

var loginSchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []string{"usernameOrEmail", "password"},
	"properties": map[string]any{
		"usernameOrEmail": map[string]any{"type": "string", "minLength": 1},
		"password":        map[string]any{"type": "string", "minLength": 1},
	},
})

var loginMessages = fieldMessages{
	"usernameOrEmail": {"required": "Please enter your username or email."},
	"password":        {"required": "Please enter your password."},
}

var loginFields = []string{"usernameOrEmail", "password"}

var registerSchema = mustSchema(map[string]any{
	"type":     "object",
	"required": []string{"name", "username", "email", "password", "passwordConfirmation"},
	"properties": map[string]any{
		"name":                 map[string]any{"type": "string", "minLength": 1},
		"username":             map[string]any{"type": "string", "pattern": `^[a-zA-Z0-9._]{3,20}$`},
		"email":                map[string]any{"type": "string", "format": "email"},
		"password":             map[string]any{"type": "string", "minLength": 8},
		"passwordConfirmation": map[string]any{"type": "string", "minLength": 1},
	},
})

var registerMessages = fieldMessages{
	"name":                 {"required": "Please enter your name."},
	"username":             {"required": "Please choose a username.", "pattern": "Please enter a valid username."},
	"email":                {"required": "Please enter your email.", "format": "Please enter a valid email."},
	"password":             {"required": "Please enter a password.", "string_gte": "Password must meet the requirements."},
	"passwordConfirmation": {"required": "Please re-enter your password."},
}

var registerFields = []string{"name", "username", "email", "password", "passwordConfirmation"}

func mustSchema(s map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid form schema: %v", err))
	}
	return schema
}

// validateForm checks doc against the schema and returns one message per
// failing field, keyed by field. Blank values must be left out of doc so
// they are reported as missing.
func validateForm(schema *gojsonschema.Schema, messages fieldMessages, doc map[string]any) (map[string]string, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("error validating form: %w", err)
	}

	failed := make(map[string]string)
	for _, e := range result.Errors() {
		field := e.Field()
		if e.Type() == "required" {
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
		}
		if _, seen := failed[field]; seen {
			continue
		}
		msg, ok := messages[field][e.Type()]
		if !ok {
			msg = messages[field]["required"]
		}
		if msg == "" {
			msg = e.Description()
		}
		failed[field] = msg
	}
	return failed, nil
}

// formDoc builds the document to validate, leaving out blank values.
func formDoc(values map[string]string) map[string]any {
	doc := make(map[string]any, len(values))
	for k, v := range values {
		if v != "" {
			doc[k] = v
		}
	}
	return doc
}

func orderedMessages(failed map[string]string, fields []string) []string {
	var res []string
	for _, f := range fields {
		if m, ok := failed[f]; ok {
			res = append(res, m)
		}
	}
	return res
}

func (c *controller) Login(ctx context.Context, sess *session.Session, form LoginForm) error {
	form.UsernameOrEmail = strings.TrimSpace(form.UsernameOrEmail)
	form.Password = strings.TrimSpace(form.Password)

	failed, err := validateForm(loginSchema, loginMessages, formDoc(map[string]string{
		"usernameOrEmail": form.UsernameOrEmail,
		"password":        form.Password,
	}))
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return &FormError{Messages: orderedMessages(failed, loginFields)}
	}

	u, err := c.golf.Login(ctx, form.UsernameOrEmail, form.Password)
	if err != nil {
		c.logger.Info("login failed", zap.Int("status", golf.StatusOf(err)), zap.Error(err))
		return fmt.Errorf("error logging in: %w", err)
	}

	return c.logIn(ctx, sess, u)
}

func (c *controller) Register(ctx context.Context, sess *session.Session, form RegisterForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	form.Password = strings.TrimSpace(form.Password)
	form.PasswordConfirmation = strings.TrimSpace(form.PasswordConfirmation)

	failed, err := validateForm(registerSchema, registerMessages, formDoc(map[string]string{
		"name":                 form.Name,
		"username":             form.Username,
		"email":                form.Email,
		"password":             form.Password,
		"passwordConfirmation": form.PasswordConfirmation,
	}))
	if err != nil {
		return err
	}

	if _, ok := failed["username"]; !ok {
		if !ValidUsername(form.Username) {
			failed["username"] = registerMessages["username"]["pattern"]
		} else if c.golf.UsernameTaken(ctx, form.Username) {
			failed["username"] = "Username is already taken."
		}
	}
	if _, ok := failed["email"]; !ok && c.golf.EmailTaken(ctx, form.Email) {
		failed["email"] = "Email is already taken."
	}
	if _, ok := failed["password"]; !ok && !ValidPassword(form.Password) {
		failed["password"] = "Password must meet the requirements."
	}
	if _, ok := failed["passwordConfirmation"]; !ok && form.PasswordConfirmation != form.Password {
		failed["passwordConfirmation"] = "Passwords must match."
	}
	if len(failed) > 0 {
		return &FormError{Messages: orderedMessages(failed, registerFields)}
	}

	u, err := c.golf.Register(ctx, &golf.Registration{
		Name:                 form.Name,
		Username:             form.Username,
		Email:                form.Email,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})
	if err != nil {
		c.logger.Info("register failed", zap.Int("status", golf.StatusOf(err)), zap.Error(err))
		return fmt.Errorf("error registering: %w", err)
	}

	return c.logIn(ctx, sess, u)
}

func (c *controller) logIn(ctx context.Context, sess *session.Session, u *model.User) error {
	sess.Login(u)
	return c.save(ctx, sess)
}

// ValidUsername is true for 3 to 20 letters, digits, '.' and '_', where the
// first and last character is not a '.' or '_' and no two of them follow
// each other.
func ValidUsername(u string) bool {
	if len(u) < 3 || len(u) > 20 {
		return false
	}
	prevSep := false
	for i, r := range u {
		sep := r == '.' || r == '_'
		switch {
		case sep:
			if i == 0 || i == len(u)-1 || prevSep {
				return false
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
		prevSep = sep
	}
	return true
}

const passwordSpecials = "#?!@$%^&*-"

// ValidPassword is true for 8 or more characters including an upper case
// letter, a lower case letter, a digit and one of #?!@$%^&*-.
func ValidPassword(p string) bool {
	if len([]rune(p)) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
