package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"google.golang.org/api/option"
	slidesapi "google.golang.org/api/slides/v1"
	ytapi "google.golang.org/api/youtube/v3"

	"ytslides/auth"
	"ytslides/config"
)

// Setup acquires the user's credential and builds a Driver whose Google
// API calls are authorized by it. The consent URL, if needed, is printed
// to out.
func Setup(ctx context.Context, cfg *config.Config, out io.Writer) (*Driver, error) {
	mgr := &auth.Manager{
		ClientSecretPath: cfg.ClientSecretPath,
		Store:            auth.NewFileTokenStore(cfg.TokenPath, cfg.LockTimeout),
		Flow:             &auth.LocalServerFlow{Out: out},
	}
	cred, err := mgr.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	ts := option.WithTokenSource(cred.TokenSource())
	ytSvc, err := ytapi.NewService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	slidesSvc, err := slidesapi.NewService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create slides service: %w", err)
	}

	return NewDriver(cfg, out, slidesSvc, ytSvc, log.Default()), nil
}
