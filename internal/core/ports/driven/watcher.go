package driven

import "context"

// ChangeWatcher reports changes made to the store's backing file,
// including writes from other processes.
type ChangeWatcher interface {
	// Watch returns a channel that receives a value after each burst of
	// changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
