package override

import "context"

// Source loads override sets. The boolean is false when path is empty or
// the file does not exist.
type Source interface {
	Load(ctx context.Context, path string) (Set, bool, error)
}
