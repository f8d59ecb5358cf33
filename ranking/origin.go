package ranking

import (
	"context"

	"github.com/pkg/errors"
	"github.com/retronet/feedranker/model"
)

// maxRepostHops bounds the origin walk. Real chains are short, anything
// deeper than this is treated as corrupt data.
const maxRepostHops = 32

// ResolveOrigin walks a repost chain to its non-repost original. The data
// model promises chains are acyclic, but that is only enforced by writer
// convention, so the walk carries a visited set and a hop bound instead of
// trusting it.
func ResolveOrigin(ctx context.Context, content ContentStore, post *model.Post) (*model.Post, error) {
	current := post
	visited := map[string]bool{current.Id: true}

	for hops := 0; current.IsRepost(); hops++ {
		if hops >= maxRepostHops {
			return nil, errors.Errorf("repost chain exceeds %d hops from post %s", maxRepostHops, post.Id)
		}
		parentID := *current.RepostOfID
		if visited[parentID] {
			return nil, errors.Errorf("repost cycle detected at post %s", parentID)
		}

		parent, err := content.PostByID(ctx, parentID)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve repost parent %s", parentID)
		}
		if parent == nil {
			return nil, errors.Errorf("repost parent %s does not exist", parentID)
		}
		visited[parentID] = true
		current = parent
	}
	return current, nil
}
