package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// Directory resolves public user info through Firebase Auth. It backs
// both the conversation counterpart names and the public profile
// endpoint.
type Directory struct {
	client *auth.Client
}

func NewDirectory(ctx context.Context, projectID string) (*Directory, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &Directory{client: client}, nil
}

func NewDirectoryFromClient(client *auth.Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) DisplayName(ctx context.Context, uid string) (string, error) {
	user, err := d.client.GetUser(ctx, uid)
	if err != nil {
		return "", err
	}
	return user.DisplayName, nil
}

type PublicUser struct {
	UID         string
	DisplayName string
	PhotoURL    string
}

func (d *Directory) PublicUser(ctx context.Context, uid string) (*PublicUser, error) {
	user, err := d.client.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &PublicUser{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}, nil
}
