package forms

import (
	"reflect"
	"strings"

	"realworldblog/internal/blog/app/dto"
	"realworldblog/internal/blog/domain/entities"
)

// Имена форм.
const (
	FormSignUp  = "sign-up"
	FormSignIn  = "sign-in"
	FormProfile = "profile"
	FormArticle = "article"
)

// Form связывает имя формы с типом ее тела. Правила полей задаются тегами validate.
type Form[F any] struct {
	Name string
	// Normalize приводит тело к виду, в котором оно проверяется и отправляется.
	Normalize func(F) F
	// Echo - значения для повторного показа формы. Пароли не возвращаются.
	Echo func(F) map[string]any
}

// Validate проверяет тело формы.
func (f Form[F]) Validate(input F) entities.FieldErrors {
	if f.Normalize != nil {
		input = f.Normalize(input)
	}
	return validateStruct(input)
}

// Fields возвращает имена полей формы в порядке объявления.
func (f Form[F]) Fields() []string {
	t := reflect.TypeFor[F]()
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

// SignUp - форма регистрации.
var SignUp = Form[dto.SignUpForm]{
	Name: FormSignUp,
	Echo: func(f dto.SignUpForm) map[string]any {
		return map[string]any{"username": f.Username, "email": f.Email, "agreement": f.Agreement}
	},
}

// SignIn - форма входа.
var SignIn = Form[dto.SignInForm]{
	Name: FormSignIn,
	Echo: func(f dto.SignInForm) map[string]any {
		return map[string]any{"email": f.Email}
	},
}

// Profile - форма редактирования профиля.
var Profile = Form[dto.ProfileForm]{
	Name: FormProfile,
	Echo: func(f dto.ProfileForm) map[string]any {
		return map[string]any{"username": f.Username, "email": f.Email, "avatar": f.Avatar}
	},
}

// Article - форма создания и редактирования статьи.
var Article = Form[dto.ArticleForm]{
	Name: FormArticle,
	Normalize: func(f dto.ArticleForm) dto.ArticleForm {
		f.TagList = entities.CleanTags(f.TagList)
		return f
	},
	Echo: func(f dto.ArticleForm) map[string]any {
		tags := f.TagList
		if len(tags) == 0 {
			tags = []string{""}
		}
		return map[string]any{"title": f.Title, "description": f.Description, "body": f.Body, "tagList": tags}
	},
}

// DraftOf переводит тело формы статьи в черновик без пустых тегов.
func DraftOf(f dto.ArticleForm) entities.Draft {
	return entities.Draft{
		Title:       f.Title,
		Description: f.Description,
		Body:        f.Body,
		TagList:     entities.CleanTags(f.TagList),
	}
}
