package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phrazzld/mesto-api/internal/domain"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	About    string             `bson:"about"`
	Avatar   string             `bson:"avatar"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

type cardDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"name"`
	Link      string               `bson:"link"`
	Owner     primitive.ObjectID   `bson:"owner"`
	Likes     []primitive.ObjectID `bson:"likes"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func newUserDocument(u *domain.User) (userDocument, error) {
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return userDocument{}, err
	}
	return userDocument{
		ID:       id,
		Name:     u.Name,
		About:    u.About,
		Avatar:   u.Avatar,
		Email:    u.Email,
		Password: u.HashedPassword,
	}, nil
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		About:          d.About,
		Avatar:         d.Avatar,
		Email:          d.Email,
		HashedPassword: d.Password,
	}
}

func newCardDocument(c *domain.Card) (cardDocument, error) {
	id, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return cardDocument{}, err
	}
	owner, err := primitive.ObjectIDFromHex(c.Owner)
	if err != nil {
		return cardDocument{}, err
	}
	likes := make([]primitive.ObjectID, 0, len(c.Likes))
	for _, l := range c.Likes {
		oid, err := primitive.ObjectIDFromHex(l)
		if err != nil {
			return cardDocument{}, err
		}
		likes = append(likes, oid)
	}
	return cardDocument{
		ID:        id,
		Name:      c.Name,
		Link:      c.Link,
		Owner:     owner,
		Likes:     likes,
		CreatedAt: c.CreatedAt,
	}, nil
}

func (d cardDocument) toDomain() *domain.Card {
	likes := make([]string, 0, len(d.Likes))
	for _, l := range d.Likes {
		likes = append(likes, l.Hex())
	}
	return &domain.Card{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Link:      d.Link,
		Owner:     d.Owner.Hex(),
		Likes:     likes,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
