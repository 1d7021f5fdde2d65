package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MapUnordered applies fn to every item with at most the session's worker
// budget in flight. Results arrive in completion order, so callers must not
// rely on any ordering. The first error cancels the remaining work and is
// returned.
func MapUnordered[S, T any](ctx context.Context, session *Session, items []S, fn func(context.Context, S) (T, error)) ([]T, error) {
	if session.isClosed() {
		return nil, ErrSessionClosed
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(session.workers)

	var mu sync.Mutex

	results := make([]T, 0, len(items))

	for _, item := range items {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := fn(ctx, item)
			if err != nil {
				return err
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
