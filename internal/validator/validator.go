package validator

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validation messages surfaced inline to the user, matching the UI locale.
const (
	MsgPasswordNoUpper   = "Пароль не содержит заглавных букв"
	MsgPasswordNoLower   = "Пароль не содержит строчных"
	MsgPasswordNoDigit   = "Пароль не содержит цифр"
	MsgPasswordMismatch  = "Пароли не совпадают"
	MsgAgreementRequired = "Подтвердите обработку данных"
	MsgBadGroup          = "Ошибка в названии группы, убедитесь, что она в формате 000-000 или 0000-000"
	MsgBadEmail          = "Ошибка в email, убедитесь, что он записан корректно"
	MsgBadGithub         = "Ошибка в логине GitHub, убедитесь, что он указан корректно"
	MsgFieldsRequired    = "Заполните все поля"
	MsgBadClassroomLink  = "Введите корректную ссылку на GitHub"
)

var (
	groupRe         = regexp.MustCompile(`^(\d{3,4})-(\d{3,4})$`)
	emailRe         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	githubHandleRe  = regexp.MustCompile(`^[a-zA-Z0-9](?:-?[a-zA-Z0-9])*$`)
	classroomLinkRe = regexp.MustCompile(`^https://classroom\.github\.com/classrooms/\d+-[\w-]+/assignments/[\w-]+$`)
)

const maxGithubHandleLen = 39

// Error is a user-facing validation failure; its message is shown verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validator bundles struct-tag validation with the form business rules that
// must fire before any network call leaves the gateway.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// tag names in errors come from json tags, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("group_format", func(fl validator.FieldLevel) bool {
		return groupRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("github_handle", func(fl validator.FieldLevel) bool {
		return ValidGithubHandle(fl.Field().String())
	})
	_ = v.RegisterValidation("classroom_link", func(fl validator.FieldLevel) bool {
		return classroomLinkRe.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct runs plain struct-tag validation.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidGroup reports whether a cohort label matches 000-000 or 0000-000.
func ValidGroup(group string) bool {
	return groupRe.MatchString(group)
}

// ValidEmail mirrors the permissive anything@anything.anything form check.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidGithubHandle checks the GitHub username rules: alphanumeric with
// single interior hyphens, at most 39 characters.
func ValidGithubHandle(handle string) bool {
	if handle == "" || len(handle) > maxGithubHandleLen {
		return false
	}
	return githubHandleRe.MatchString(handle)
}

// ValidClassroomLink checks a GitHub Classroom assignment URL.
func ValidClassroomLink(link string) bool {
	return classroomLinkRe.MatchString(link)
}

// CheckPassword enforces the composition policy. Each missing character
// class yields its own distinct message, checked in a fixed order.
func CheckPassword(password string) error {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return &Error{Message: MsgPasswordNoUpper}
	}
	if !hasLower {
		return &Error{Message: MsgPasswordNoLower}
	}
	if !hasDigit {
		return &Error{Message: MsgPasswordNoDigit}
	}
	return nil
}
