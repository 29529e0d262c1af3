package api

import (
	"time"

	"github.com/phrazzld/mesto-api/internal/api/middleware"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/domain"
)

// idParam is the validator tag for document ids in the path.
const idParam = "required,len=24,hexadecimal"

// SignupRequest defines the payload for POST /signup. Profile fields are
// optional and fall back to the defaults.
type SignupRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2,max=30"`
	About    string `json:"about"    validate:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar"   validate:"omitempty,link"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// SigninRequest defines the payload for POST /signin.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the payload for PATCH /users/me.
type UpdateProfileRequest struct {
	Name  string `json:"name"  validate:"omitempty,min=2,max=30"`
	About string `json:"about" validate:"omitempty,min=2,max=30"`
}

// Check requires at least one of the two fields.
func (r *UpdateProfileRequest) Check() []shared.FieldError {
	if r.Name == "" && r.About == "" {
		return []shared.FieldError{{Field: "name", Message: "name or about is required"}}
	}
	return nil
}

// UpdateAvatarRequest defines the payload for PATCH /users/me/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,link"`
}

// CreateCardRequest defines the payload for POST /cards.
type CreateCardRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
	Link string `json:"link" validate:"required,link"`
}

// UserResponse is the public view of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// CardResponse is the public view of a card.
type CardResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// SigninResponse is returned by POST /signin alongside the jwt cookie.
type SigninResponse struct {
	Token string `json:"token"`
	ID    string `json:"_id"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse wraps a payload as {"data": ...}.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toCardResponse(c *domain.Card) CardResponse {
	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}
	return CardResponse{
		ID:        c.ID,
		Name:      c.Name,
		Link:      c.Link,
		Owner:     c.Owner,
		Likes:     likes,
		CreatedAt: c.CreatedAt,
	}
}

func toCardResponses(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

// Route schemas.
var (
	signupSchema        = middleware.Schema{Body: func() any { return &SignupRequest{} }}
	signinSchema        = middleware.Schema{Body: func() any { return &SigninRequest{} }}
	updateProfileSchema = middleware.Schema{Body: func() any { return &UpdateProfileRequest{} }}
	updateAvatarSchema  = middleware.Schema{Body: func() any { return &UpdateAvatarRequest{} }}
	createCardSchema    = middleware.Schema{Body: func() any { return &CreateCardRequest{} }}
	userIDSchema        = middleware.Schema{Params: map[string]string{"id": idParam}}
	cardIDSchema        = middleware.Schema{Params: map[string]string{"cardId": idParam}}
)
