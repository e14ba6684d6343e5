// Package forms содержит валидацию форм и контроллер их отправки.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"realworldblog/internal/blog/domain/entities"
)

// Пользовательские теги правил.
const (
	tagEmail = "blogemail"
	tagURL   = "blogurl"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`^(ftp|http|https)://[^ "]+$`)
)

// Сообщения об ошибках полей.
const (
	MsgUsernameRequired    = "Username is required"
	MsgUsernameMin         = "Minimum 3 characters"
	MsgUsernameMax         = "Maximum 20 characters"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Invalid email address"
	MsgPasswordRequired    = "Password is required"
	MsgPasswordMin         = "Your password needs to be at least 6 characters."
	MsgPasswordMax         = "Maximum 40 characters"
	MsgRepeatRequired      = "Please repeat your password"
	MsgPasswordsMustMatch  = "Passwords must match"
	MsgAgreementRequired   = "You must agree to the terms"
	MsgAvatarRequired      = "Avatar URL is required"
	MsgAvatarInvalid       = "Invalid URL"
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgBodyRequired        = "Text is required"
	MsgTooManyTags         = "Maximum 10 tags"

	// MsgInvalid - сообщение для правила без собственного текста.
	MsgInvalid = "Invalid value"
)

// messages сопоставляет поле и нарушенное правило тексту ошибки.
var messages = map[string]string{
	"username.required":       MsgUsernameRequired,
	"username.min":            MsgUsernameMin,
	"username.max":            MsgUsernameMax,
	"email.required":          MsgEmailRequired,
	"email." + tagEmail:       MsgEmailInvalid,
	"password.required":       MsgPasswordRequired,
	"password.min":            MsgPasswordMin,
	"password.max":            MsgPasswordMax,
	"repeatPassword.required": MsgRepeatRequired,
	"repeatPassword.eqfield":  MsgPasswordsMustMatch,
	"agreement.required":      MsgAgreementRequired,
	"avatar.required":         MsgAvatarRequired,
	"avatar." + tagURL:        MsgAvatarInvalid,
	"title.required":          MsgTitleRequired,
	"description.required":    MsgDescriptionRequired,
	"body.required":           MsgBodyRequired,
	"tagList.max":             MsgTooManyTags,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Ошибки адресуются по именам полей JSON, как их видит клиент.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, tagEmail, emailPattern)
	mustRegister(v, tagURL, urlPattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// validateStruct проверяет структуру по тегам validate.
// Для каждого поля сообщается только первое нарушенное правило.
func validateStruct(input any) entities.FieldErrors {
	errs := entities.FieldErrors{}

	var failures validator.ValidationErrors
	if err := validate.Struct(input); !errors.As(err, &failures) {
		return errs
	}

	for _, fe := range failures {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = MsgInvalid
		}
		errs.Add(fe.Field(), msg)
	}
	return errs
}
