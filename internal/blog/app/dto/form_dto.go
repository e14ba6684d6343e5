package dto

// SignUpForm - тело POST /sign-up.
type SignUpForm struct {
	Username       string `json:"username" validate:"required,min=3,max=20"`
	Email          string `json:"email" validate:"required,blogemail"`
	Password       string `json:"password" validate:"required,min=6,max=40"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
	Agreement      bool   `json:"agreement" validate:"required"`
}

// SignInForm - тело POST /sign-in.
type SignInForm struct {
	Email    string `json:"email" validate:"required,blogemail"`
	Password string `json:"password" validate:"required"`
}

// ProfileForm - тело PUT /profile. Пустой пароль не меняется.
type ProfileForm struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,blogemail"`
	Password string `json:"password" validate:"omitempty,min=6,max=40"`
	Avatar   string `json:"avatar" validate:"required,blogurl"`
}

// ArticleForm - тело POST /new-article и PUT /articles/:slug/edit.
// Ограничение tagList проверяется после удаления пустых тегов.
type ArticleForm struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Body        string   `json:"body" validate:"required"`
	TagList     []string `json:"tagList" validate:"max=10"`
}

// FavoriteRequest - тело POST /articles/:slug/favorite с наблюдаемым клиентом флагом.
type FavoriteRequest struct {
	Favorited *bool `json:"favorited"`
}
