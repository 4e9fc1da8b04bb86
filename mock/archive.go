package mock

import (
	"context"

	"github.com/fwojciec/brandscan"
)

var _ brandscan.PageArchive = (*PageArchive)(nil)

// PageArchive is a mock implementation of brandscan.PageArchive.
type PageArchive struct {
	SaveFn   func(ctx context.Context, page *brandscan.ArchivedPage) error
	CommitFn func() error
	AbortFn  func() error
}

func (a *PageArchive) Save(ctx context.Context, page *brandscan.ArchivedPage) error {
	return a.SaveFn(ctx, page)
}

func (a *PageArchive) Commit() error {
	return a.CommitFn()
}

func (a *PageArchive) Abort() error {
	return a.AbortFn()
}
