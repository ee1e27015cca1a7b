package docstore

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// Firebase is a Store backed by a Firebase Realtime Database.
type Firebase struct {
	client *db.Client
}

var _ Store = (*Firebase)(nil)

// NewFirebase connects to the Realtime Database at databaseURL. When
// credentialsFile is empty, application default credentials are used.
func NewFirebase(ctx context.Context, databaseURL, credentialsFile string) (*Firebase, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize realtime database client: %w", err)
	}
	return &Firebase{client: client}, nil
}

func (f *Firebase) Get(ctx context.Context, path string) (any, error) {
	var v any
	if err := f.client.NewRef(path).Get(ctx, &v); err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrUnavailable, path, err)
	}
	return v, nil
}

func (f *Firebase) Set(ctx context.Context, path string, value any) error {
	if err := f.client.NewRef(path).Set(ctx, value); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrUnavailable, path, err)
	}
	return nil
}

func (f *Firebase) Update(ctx context.Context, path string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := f.client.NewRef(path).Update(ctx, fields); err != nil {
		return fmt.Errorf("%w: update %s: %w", ErrUnavailable, path, err)
	}
	return nil
}

func (f *Firebase) Remove(ctx context.Context, path string) error {
	if err := f.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrUnavailable, path, err)
	}
	return nil
}
