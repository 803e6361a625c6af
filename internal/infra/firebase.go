// README: Firebase Admin SDK initialisation and ID-token verifier for API callers.
package infra

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// CallerToken is the verified identity of an API caller.
type CallerToken struct {
	UID    string
	Claims map[string]interface{}
}

// Plan returns the caller's "plan" custom claim, empty when unset.
func (t *CallerToken) Plan() string {
	if t == nil {
		return ""
	}
	plan, _ := t.Claims["plan"].(string)
	return plan
}

// TokenVerifier verifies a raw Firebase ID token string.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*CallerToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a TokenVerifier using the Firebase Admin SDK.
// An empty credentialsFile falls back to application-default credentials.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*CallerToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &CallerToken{UID: token.UID, Claims: token.Claims}, nil
}
