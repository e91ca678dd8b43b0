package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/tweeter/backend/internal/models"
)

// IDTokenVerifier is the part of *auth.Client used to check Firebase ID tokens
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseUserLookup maps a Firebase UID to a local user
type FirebaseUserLookup interface {
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// FirebaseVerifier accepts Firebase ID tokens for users linked to a Firebase UID
type FirebaseVerifier struct {
	authClient IDTokenVerifier
	users      FirebaseUserLookup
}

func NewFirebaseVerifier(authClient IDTokenVerifier, users FirebaseUserLookup) *FirebaseVerifier {
	return &FirebaseVerifier{authClient: authClient, users: users}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, idToken string) (uint, error) {
	token, err := v.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired ID token: %w", err)
	}

	user, err := v.users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		return 0, fmt.Errorf("no user linked to firebase uid %s: %w", token.UID, err)
	}
	return user.ID, nil
}
