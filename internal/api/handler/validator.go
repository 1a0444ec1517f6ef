package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field to its first validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+fe[f])
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

var (
	usernameChars = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	onlyDigits    = regexp.MustCompile(`^\d+$`)
	onlyUnders    = regexp.MustCompile(`^_+$`)
	phoneNumber   = regexp.MustCompile(`^\+?[0-9][0-9 .\-]{7,14}$`)
	hasUpper      = regexp.MustCompile(`[A-Z]`)
	hasLower      = regexp.MustCompile(`[a-z]`)
	hasDigit      = regexp.MustCompile(`[0-9]`)
	hasSpecial    = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

var reservedUsernames = map[string]struct{}{
	"admin":     {},
	"root":      {},
	"superuser": {},
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are keyed by the form tag of the field.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	rules := map[string]func(string) bool{
		"username_chars":      usernameChars.MatchString,
		"not_numeric_only":    func(s string) bool { return !onlyDigits.MatchString(s) },
		"not_underscore_only": func(s string) bool { return !onlyUnders.MatchString(s) },
		"not_reserved": func(s string) bool {
			_, ok := reservedUsernames[strings.ToLower(s)]
			return !ok
		},
		"phone":       phoneNumber.MatchString,
		"has_upper":   hasUpper.MatchString,
		"has_lower":   hasLower.MatchString,
		"has_digit":   hasDigit.MatchString,
		"has_special": hasSpecial.MatchString,
		"amount": func(s string) bool {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			return err == nil && n > 0
		},
	}
	for tag, fn := range rules {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
	}

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Validation failures are
// returned as FieldErrors.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(FieldErrors, len(ve))
			for _, fe := range ve {
				if _, seen := out[fe.Field()]; !seen {
					out[fe.Field()] = fieldError(fe)
				}
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a Vietnamese message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_without", "required_without_all":
		return "Trường này không được để trống"
	case "email":
		return "Email không hợp lệ"
	case "url":
		return "Địa chỉ không hợp lệ"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Phải chứa ít nhất %s ký tự", fe.Param())
		}
		return fmt.Sprintf("Phải lớn hơn hoặc bằng %s", fe.Param())
	case "max":
		return fmt.Sprintf("Không được dài quá %s ký tự", fe.Param())
	case "oneof":
		return "Giá trị không hợp lệ"
	case "eqfield":
		return "Mật khẩu xác nhận không khớp"
	case "datetime":
		return "Ngày không hợp lệ"
	case "username_chars":
		return "Tên đăng nhập chỉ được chứa ký tự chữ cái, chữ số và dấu gạch dưới"
	case "not_numeric_only":
		return "Tên đăng nhập không được chỉ chứa ký tự số"
	case "not_underscore_only":
		return "Tên đăng nhập không được chỉ chứa dấu gạch dưới"
	case "not_reserved":
		return "Tên đăng nhập không hợp lệ"
	case "phone":
		return "Số điện thoại không hợp lệ"
	case "has_upper":
		return "Mật khẩu phải chứa ít nhất một chữ cái viết hoa"
	case "has_lower":
		return "Mật khẩu phải chứa ít nhất một chữ cái viết thường"
	case "has_digit":
		return "Mật khẩu phải chứa ít nhất một chữ số"
	case "has_special":
		return "Mật khẩu phải chứa ít nhất một ký tự đặc biệt"
	case "amount":
		return "Số tiền phải lớn hơn 0"
	default:
		return fmt.Sprintf("Giá trị không hợp lệ (%s)", fe.Tag())
	}
}
