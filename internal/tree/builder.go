// Package tree assembles bounded comment trees from the flat HN item graph.
//
// Given a root item id, the Builder walks the item's child graph through
// the item API and constructs a nested in-memory tree limited by a maximum
// depth and a maximum breadth per level. Individual child fetches that
// fail, return nothing, or return the wrong kind of item are skipped
// without aborting the traversal; only a failed root fetch fails the call.
package tree

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fragmede/hnmcp/internal/hn"
)

// ItemGetter fetches one item by id. An absent item returns (nil, nil).
type ItemGetter interface {
	GetItem(ctx context.Context, id int) (*hn.Item, error)
}

// Builder expands items into bounded comment trees. It is stateless:
// each Build call owns its own recursion state, so concurrent calls with
// different bounds cannot interfere.
type Builder struct {
	items ItemGetter
	log   zerolog.Logger
}

// NewBuilder creates a Builder backed by the given item source.
func NewBuilder(items ItemGetter, log zerolog.Logger) *Builder {
	return &Builder{items: items, log: log}
}

// CommentNode is one comment in an assembled tree. Author and Text are
// empty when the source item carried no usable content. Replies holds at
// most the breadth bound's worth of children, in source kids order.
type CommentNode struct {
	Author  string
	Text    string
	Replies []*CommentNode

	// id is kept for diagnostics only; it is not part of the
	// assembled output.
	id int
}

// ID returns the source item id of the node.
func (n *CommentNode) ID() int { return n.id }

// Thread is the result of a Build call: the fetched root item plus its
// expanded comments. Root is nil when the root id does not exist.
type Thread struct {
	Root     *hn.Item
	Comments []*CommentNode
}

// skipReason says why a fetched child contributed no node to the tree.
type skipReason int

const (
	skipNone skipReason = iota
	skipFetchFailed
	skipAbsent
	skipDeleted
	skipNotComment
	skipCycle
)

// childResult is the outcome of fetching one child: either a node, or a
// skip with a reason. Making the skip an explicit value keeps the
// decision testable instead of burying it in control flow.
type childResult struct {
	id   int
	item *hn.Item
	node *CommentNode
	skip skipReason
	err  error
}

// Build fetches rootID and expands its children into a comment tree.
//
// The root is at depth 0 and expansion stops once a node sits at
// maxDepth edges from the root; at most maxBreadth children are
// retained (and fetched) per expanded node. A failed root fetch returns
// a *RootFetchError; an absent root returns a Thread with a nil Root.
// All other failures degrade the shape of the tree, never the call.
func (b *Builder) Build(ctx context.Context, rootID, maxDepth, maxBreadth int) (*Thread, error) {
	root, err := b.items.GetItem(ctx, rootID)
	if err != nil {
		return nil, &RootFetchError{ID: rootID, Err: err}
	}
	if root == nil {
		b.log.Debug().Int("id", rootID).Msg("root item absent")
		return &Thread{Comments: []*CommentNode{}}, nil
	}

	thread := &Thread{Root: root, Comments: []*CommentNode{}}
	if root.Deleted || root.Dead || len(root.Kids) == 0 {
		return thread, nil
	}
	if maxDepth < 1 || maxBreadth < 1 {
		return thread, nil
	}

	path := map[int]struct{}{rootID: {}}
	thread.Comments = b.expand(ctx, root.Kids, 1, maxDepth, maxBreadth, path)
	return thread, nil
}

// expand fetches up to maxBreadth of the given kid ids and builds their
// nodes. depth is the depth the constructed nodes sit at; recursion only
// continues while the next level would still be within maxDepth. path
// holds the ids on the active root-to-node chain as a cycle guard.
//
// Sibling fetches run concurrently, but results land in an
// index-addressed slice and nodes are assembled in original kids order,
// so the ordering contract never depends on fetch completion order.
func (b *Builder) expand(ctx context.Context, kids []int, depth, maxDepth, maxBreadth int, path map[int]struct{}) []*CommentNode {
	if len(kids) > maxBreadth {
		// Breadth cutoff: ids beyond the cap are never fetched.
		kids = kids[:maxBreadth]
	}

	results := make([]childResult, len(kids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range kids {
		if _, onPath := path[id]; onPath {
			results[i] = childResult{id: id, skip: skipCycle}
			continue
		}
		g.Go(func() error {
			results[i] = b.fetchChild(gctx, id)
			return nil
		})
	}
	// fetchChild never returns an error through the group; Wait only
	// synchronizes the sibling fetches.
	_ = g.Wait()

	nodes := make([]*CommentNode, 0, len(kids))
	for _, res := range results {
		if res.skip != skipNone {
			b.logSkip(res)
			continue
		}
		if depth+1 <= maxDepth && len(res.item.Kids) > 0 {
			path[res.id] = struct{}{}
			res.node.Replies = b.expand(ctx, res.item.Kids, depth+1, maxDepth, maxBreadth, path)
			delete(path, res.id)
		}
		nodes = append(nodes, res.node)
	}
	return nodes
}

// fetchChild fetches one child id and classifies the outcome.
func (b *Builder) fetchChild(ctx context.Context, id int) childResult {
	item, err := b.items.GetItem(ctx, id)
	if err != nil {
		return childResult{id: id, skip: skipFetchFailed, err: err}
	}
	if item == nil {
		return childResult{id: id, skip: skipAbsent}
	}
	if item.Deleted || item.Dead {
		return childResult{id: id, item: item, skip: skipDeleted}
	}
	if item.Type != hn.TypeComment {
		return childResult{id: id, item: item, skip: skipNotComment}
	}
	return childResult{
		id:   id,
		item: item,
		node: &CommentNode{id: id, Author: item.By, Text: item.Text, Replies: []*CommentNode{}},
	}
}

func (b *Builder) logSkip(res childResult) {
	switch res.skip {
	case skipFetchFailed:
		b.log.Warn().Int("id", res.id).Err(res.err).Msg("skipping comment: fetch failed")
	case skipAbsent:
		b.log.Debug().Int("id", res.id).Msg("skipping comment: item absent")
	case skipDeleted:
		b.log.Debug().Int("id", res.id).Msg("skipping comment: deleted or dead")
	case skipNotComment:
		b.log.Debug().Int("id", res.id).Str("type", res.item.Type).Msg("skipping non-comment child")
	case skipCycle:
		b.log.Warn().Int("id", res.id).Msg("skipping comment: id already on path")
	}
}
