package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Profile defaults applied when a user signs up without them.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// Profile text bounds, in characters.
const (
	MinProfileTextLength = 2
	MaxProfileTextLength = 30
)

// User validation errors
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrInvalidUserName     = fmt.Errorf("%w: name must be 2 to 30 characters", ErrValidation)
	ErrInvalidUserAbout    = fmt.Errorf("%w: about must be 2 to 30 characters", ErrValidation)
	ErrInvalidAvatar       = fmt.Errorf("%w: avatar must be a valid URL", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

var fieldValidator = validator.New()

// User represents a registered user.
// The password hash is never serialized.
type User struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	About          string `json:"about"`
	Avatar         string `json:"avatar"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}

// NewUser creates a new User with a fresh ID. Empty profile fields take
// their defaults and the email is normalised to lower case.
// Returns an error if validation fails.
func NewUser(name, about, avatar, email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             NewID(),
		Name:           orDefault(name, DefaultUserName),
		About:          orDefault(about, DefaultUserAbout),
		Avatar:         orDefault(avatar, DefaultUserAvatar),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (u *User) Validate() error {
	if !IsValidID(u.ID) {
		return ErrEmptyUserID
	}
	if !validProfileText(u.Name) {
		return ErrInvalidUserName
	}
	if !validProfileText(u.About) {
		return ErrInvalidUserAbout
	}
	if fieldValidator.Var(u.Avatar, "required,url") != nil {
		return ErrInvalidAvatar
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if fieldValidator.Var(u.Email, "email") != nil {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// UpdateProfile applies the non-empty fields of a profile update.
func (u *User) UpdateProfile(name, about string) error {
	updated := *u
	if name != "" {
		updated.Name = name
	}
	if about != "" {
		updated.About = about
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*u = updated
	return nil
}

// UpdateAvatar replaces the avatar URL.
func (u *User) UpdateAvatar(avatar string) error {
	updated := *u
	updated.Avatar = avatar
	if err := updated.Validate(); err != nil {
		return err
	}
	*u = updated
	return nil
}

// NormalizeEmail trims and lower-cases an email address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validProfileText(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= MinProfileTextLength && n <= MaxProfileTextLength
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
