package tree

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/hnmcp/internal/hn"
)

// fakeItems is a deterministic ItemGetter backed by a map. Absent ids
// return (nil, nil) like the real client; ids in failing return an
// error. Every fetch is recorded.
type fakeItems struct {
	mu      sync.Mutex
	items   map[int]*hn.Item
	failing map[int]error
	delays  map[int]time.Duration
	fetched []int
}

func (f *fakeItems) GetItem(ctx context.Context, id int) (*hn.Item, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()

	if d, ok := f.delays[id]; ok {
		time.Sleep(d)
	}
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	return f.items[id], nil
}

func (f *fakeItems) fetchCount(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fetched := range f.fetched {
		if fetched == id {
			n++
		}
	}
	return n
}

func story(id int, kids ...int) *hn.Item {
	return &hn.Item{ID: id, Type: hn.TypeStory, By: "op", Title: "a story", Kids: kids}
}

func comment(id int, author, text string, kids ...int) *hn.Item {
	return &hn.Item{ID: id, Type: hn.TypeComment, By: author, Text: text, Kids: kids}
}

func newTestBuilder(f *fakeItems) *Builder {
	return NewBuilder(f, zerolog.Nop())
}

func TestBuildBreadthCutoffAndFailedChild(t *testing.T) {
	f := &fakeItems{
		items: map[int]*hn.Item{
			1: story(1, 2, 3, 4),
			3: comment(3, "a", "hi"),
			4: comment(4, "never", "fetched"),
		},
		failing: map[int]error{2: errors.New("boom")},
	}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 2)
	require.NoError(t, err)
	require.NotNil(t, thread.Root)

	require.Len(t, thread.Comments, 1)
	assert.Equal(t, "a", thread.Comments[0].Author)
	assert.Equal(t, "hi", thread.Comments[0].Text)
	assert.Empty(t, thread.Comments[0].Replies)

	// Beyond the breadth cutoff means never fetched, not merely hidden.
	assert.Equal(t, 0, f.fetchCount(4))
}

func TestBuildDepthCutoff(t *testing.T) {
	f := &fakeItems{
		items: map[int]*hn.Item{
			1: story(1, 2),
			2: comment(2, "a", "top level", 5),
			5: comment(5, "b", "too deep"),
		},
	}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 1, 10)
	require.NoError(t, err)

	require.Len(t, thread.Comments, 1)
	assert.Empty(t, thread.Comments[0].Replies)
	assert.Equal(t, 0, f.fetchCount(5))
}

func TestBuildSkipsNonComment(t *testing.T) {
	f := &fakeItems{
		items: map[int]*hn.Item{
			1: story(1, 2, 3),
			2: {ID: 2, Type: hn.TypeJob, By: "corp", Title: "hiring"},
			3: comment(3, "a", "real comment"),
		},
	}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	require.Len(t, thread.Comments, 1)
	assert.Equal(t, "a", thread.Comments[0].Author)
}

func TestBuildSkipsDeletedDeadAndAbsent(t *testing.T) {
	f := &fakeItems{
		items: map[int]*hn.Item{
			1: story(1, 2, 3, 4, 5),
			2: {ID: 2, Type: hn.TypeComment, Deleted: true},
			3: {ID: 3, Type: hn.TypeComment, By: "ghost", Text: "shadowbanned", Dead: true},
			// 4 is absent: GetItem returns (nil, nil).
			5: comment(5, "a", "still here"),
		},
	}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	require.Len(t, thread.Comments, 1)
	assert.Equal(t, "a", thread.Comments[0].Author)
}

func TestBuildRootFetchError(t *testing.T) {
	f := &fakeItems{failing: map[int]error{1: errors.New("boom")}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	assert.Nil(t, thread)

	var rootErr *RootFetchError
	require.ErrorAs(t, err, &rootErr)
	assert.Equal(t, 1, rootErr.ID)
	assert.Contains(t, err.Error(), "1")
}

func TestBuildRootAbsent(t *testing.T) {
	f := &fakeItems{}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 99, 3, 20)
	require.NoError(t, err)
	assert.Nil(t, thread.Root)
	assert.Empty(t, thread.Comments)
}

func TestBuildRootWithoutKids(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{1: story(1)}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)
	require.NotNil(t, thread.Root)
	assert.Empty(t, thread.Comments)
}

func TestBuildDeletedRoot(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{
		1: {ID: 1, Type: hn.TypeStory, Deleted: true, Kids: []int{2}},
	}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)
	assert.Empty(t, thread.Comments)
	assert.Equal(t, 0, f.fetchCount(2))
}

func TestBuildZeroBounds(t *testing.T) {
	for name, bounds := range map[string][2]int{
		"depth zero":   {0, 20},
		"breadth zero": {3, 0},
	} {
		t.Run(name, func(t *testing.T) {
			f := &fakeItems{items: map[int]*hn.Item{
				1: story(1, 2, 3),
				2: comment(2, "a", "x"),
				3: comment(3, "b", "y"),
			}}
			b := newTestBuilder(f)

			thread, err := b.Build(context.Background(), 1, bounds[0], bounds[1])
			require.NoError(t, err)
			require.NotNil(t, thread.Root)
			assert.Empty(t, thread.Comments)

			// The root fetch still occurs; no child is ever fetched.
			assert.Equal(t, 1, f.fetchCount(1))
			assert.Equal(t, 0, f.fetchCount(2))
			assert.Equal(t, 0, f.fetchCount(3))
		})
	}
}

func TestBuildSiblingOrderSurvivesConcurrency(t *testing.T) {
	kids := []int{10, 11, 12, 13, 14, 15}
	items := map[int]*hn.Item{1: story(1, kids...)}
	delays := map[int]time.Duration{}
	for i, id := range kids {
		items[id] = comment(id, "u", "c")
		// Earlier siblings respond slower than later ones.
		delays[id] = time.Duration(len(kids)-i) * 3 * time.Millisecond
	}
	f := &fakeItems{items: items, delays: delays}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 1, 20)
	require.NoError(t, err)

	require.Len(t, thread.Comments, len(kids))
	for i, node := range thread.Comments {
		assert.Equal(t, kids[i], node.ID())
	}
}

func TestBuildNestedReplies(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{
		1: story(1, 2, 3),
		2: comment(2, "a", "first", 4, 5),
		3: comment(3, "b", "second"),
		4: comment(4, "c", "reply one", 6),
		5: comment(5, "d", "reply two"),
		6: comment(6, "e", "deep"),
	}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	require.Len(t, thread.Comments, 2)
	first := thread.Comments[0]
	assert.Equal(t, "a", first.Author)
	require.Len(t, first.Replies, 2)
	assert.Equal(t, "c", first.Replies[0].Author)
	require.Len(t, first.Replies[0].Replies, 1)
	assert.Equal(t, "e", first.Replies[0].Replies[0].Author)
	assert.Empty(t, thread.Comments[1].Replies)
}

func TestBuildBreadthAppliesPerLevel(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{
		1: story(1, 2, 3, 4),
		2: comment(2, "a", "x", 5, 6, 7),
		3: comment(3, "b", "y"),
		5: comment(5, "c", "kept"),
		6: comment(6, "d", "kept too"),
	}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 2)
	require.NoError(t, err)

	require.Len(t, thread.Comments, 2)
	assert.Len(t, thread.Comments[0].Replies, 2)
	assert.Equal(t, 0, f.fetchCount(4))
	assert.Equal(t, 0, f.fetchCount(7))
}

func TestBuildDepthBoundOnChain(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{
		1: story(1, 2),
		2: comment(2, "a", "d1", 3),
		3: comment(3, "b", "d2", 4),
		4: comment(4, "c", "d3", 5),
		5: comment(5, "d", "d4"),
	}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	node := thread.Comments[0]
	require.Len(t, node.Replies, 1)
	require.Len(t, node.Replies[0].Replies, 1)
	deepest := node.Replies[0].Replies[0]
	assert.Empty(t, deepest.Replies)
	assert.Equal(t, 0, f.fetchCount(5))
}

func TestBuildCycleGuard(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{
		// 2 claims the root as its own child; 3 claims itself.
		1: story(1, 2, 3),
		2: comment(2, "a", "loops to root", 1),
		3: comment(3, "b", "loops to self", 3),
	}}
	b := newTestBuilder(f)

	thread, err := b.Build(context.Background(), 1, 10, 20)
	require.NoError(t, err)

	require.Len(t, thread.Comments, 2)
	assert.Empty(t, thread.Comments[0].Replies)
	assert.Empty(t, thread.Comments[1].Replies)
	assert.Equal(t, 1, f.fetchCount(1))
	assert.Equal(t, 1, f.fetchCount(3))
}

func TestBuildIdempotent(t *testing.T) {
	f := &fakeItems{items: map[int]*hn.Item{
		1: story(1, 2, 3),
		2: comment(2, "a", "x", 4),
		3: comment(3, "b", "y"),
		4: comment(4, "c", "z"),
	}}
	b := newTestBuilder(f)

	first, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildFailedChildMatchesAbsentChild(t *testing.T) {
	items := func() map[int]*hn.Item {
		return map[int]*hn.Item{
			1: story(1, 2, 3, 4),
			2: comment(2, "a", "x"),
			4: comment(4, "b", "y"),
		}
	}

	failed := &fakeItems{items: items(), failing: map[int]error{3: errors.New("boom")}}
	absent := &fakeItems{items: items()}

	failedThread, err := newTestBuilder(failed).Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)
	absentThread, err := newTestBuilder(absent).Build(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	// A failed fetch degrades the tree exactly like a missing item.
	assert.Equal(t, absentThread, failedThread)
	require.Len(t, failedThread.Comments, 2)
	assert.Equal(t, "a", failedThread.Comments[0].Author)
	assert.Equal(t, "b", failedThread.Comments[1].Author)
}

func TestFetchChildClassification(t *testing.T) {
	f := &fakeItems{
		items: map[int]*hn.Item{
			2: {ID: 2, Type: hn.TypeComment, Deleted: true},
			3: {ID: 3, Type: hn.TypeJob},
			4: comment(4, "a", "fine"),
		},
		failing: map[int]error{9: errors.New("boom")},
	}
	b := newTestBuilder(f)
	ctx := context.Background()

	assert.Equal(t, skipFetchFailed, b.fetchChild(ctx, 9).skip)
	assert.Equal(t, skipAbsent, b.fetchChild(ctx, 404).skip)
	assert.Equal(t, skipDeleted, b.fetchChild(ctx, 2).skip)
	assert.Equal(t, skipNotComment, b.fetchChild(ctx, 3).skip)

	res := b.fetchChild(ctx, 4)
	assert.Equal(t, skipNone, res.skip)
	require.NotNil(t, res.node)
	assert.Equal(t, "a", res.node.Author)
}
