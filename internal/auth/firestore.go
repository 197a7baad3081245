package auth

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const usersCollection = "users"

// FirestoreStore guarda usuários na coleção `users`; o token plano é a
// chave de consulta.
type FirestoreStore struct {
	db *firestore.Client
}

func NewFirestoreStore(db *firestore.Client) *FirestoreStore {
	return &FirestoreStore{db: db}
}

func (s *FirestoreStore) FindByToken(ctx context.Context, token string) (*User, error) {
	it := s.db.Collection(usersCollection).
		Where("token", "==", token).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if err == iterator.Done {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, err
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

func (s *FirestoreStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.Collection(usersCollection).Doc(u.ID).Set(ctx, u)
	return err
}

func (s *FirestoreStore) ListSellers(ctx context.Context) ([]*User, error) {
	it := s.db.Collection(usersCollection).
		Where("role", "==", string(RoleUser)).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var out []*User
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var u User
		if err := doc.DataTo(&u); err != nil {
			return nil, err
		}
		u.ID = doc.Ref.ID
		out = append(out, &u)
	}
	return out, nil
}

func (s *FirestoreStore) HasAdmin(ctx context.Context) (bool, error) {
	it := s.db.Collection(usersCollection).
		Where("role", "==", string(RoleAdmin)).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	_, err := it.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
