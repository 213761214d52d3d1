package security

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrUnverifiedIdentity = errors.New("identity token could not be verified")

// Identity is what the identity provider vouches for: a verified email and
// the display profile attached to it.
type Identity struct {
	Email       string
	Name        string
	PhotoURL    string
	ProviderUID string
}

// IdentityVerifier validates third-party identity tokens presented at the
// token exchange endpoint.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a verifier backed by the Firebase Admin SDK.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (IdentityVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrUnverifiedIdentity
	}

	ident := &Identity{ProviderUID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		ident.Name = name
	}
	if pic, ok := tok.Claims["picture"].(string); ok {
		ident.PhotoURL = pic
	}
	if ident.Email == "" {
		return nil, ErrUnverifiedIdentity
	}
	return ident, nil
}
