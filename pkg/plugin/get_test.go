package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/extend/pkg/anymap"
)

// extended is a host that counts factory calls per plugin.
type extended struct {
	Storage
	calls map[string]int
	ready bool
}

func newExtended() *extended {
	return &extended{calls: map[string]int{}}
}

// A always builds.
type A struct{ N int }

func (A) Create(h *extended) (A, bool) {
	h.calls["A"]++
	return A{N: 1}, true
}

// B never builds.
type B struct{}

func (B) Create(h *extended) (B, bool) {
	h.calls["B"]++
	return B{}, false
}

// gated builds only once the host is ready.
type gated struct{ Ready bool }

func (gated) Create(h *extended) (gated, bool) {
	h.calls["gated"]++
	if !h.ready {
		return gated{}, false
	}
	return gated{Ready: true}, true
}

// tags is cloneable and holds a slice so clones can be told apart.
type tags struct{ Values []string }

func (tags) Create(h *extended) (tags, bool) {
	h.calls["tags"]++
	return tags{Values: []string{"a", "b"}}, true
}

func (t tags) Clone() tags {
	return tags{Values: append([]string(nil), t.Values...)}
}

// counter is a pointer plugin.
type counter struct{ hits int }

func (*counter) Create(h *extended) (*counter, bool) {
	h.calls["counter"]++
	return &counter{}, true
}

func TestGetRefScenario(t *testing.T) {
	h := newExtended()

	a, ok := GetRef[A](h)
	require.True(t, ok)
	assert.Equal(t, A{N: 1}, a)

	a, ok = GetRef[A](h)
	require.True(t, ok)
	assert.Equal(t, A{N: 1}, a)
	assert.Equal(t, 1, h.calls["A"])

	b, ok := GetMut[B](h)
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.False(t, anymap.Contains[B](h.Extensions()))
}

func TestGetRefDoesNotCacheRefusal(t *testing.T) {
	h := newExtended()

	_, ok := GetRef[gated](h)
	require.False(t, ok)
	_, ok = GetRef[gated](h)
	require.False(t, ok)
	assert.Equal(t, 2, h.calls["gated"])
	assert.Equal(t, 0, h.ExtensionsMut().Len())

	h.ready = true
	g, ok := GetRef[gated](h)
	require.True(t, ok)
	assert.True(t, g.Ready)

	_, ok = GetRef[gated](h)
	require.True(t, ok)
	assert.Equal(t, 3, h.calls["gated"])
}

func TestGetMut(t *testing.T) {
	h := newExtended()

	a, ok := GetMut[A](h)
	require.True(t, ok)
	a.N = 42

	again, ok := GetMut[A](h)
	require.True(t, ok)
	assert.Same(t, a, again)

	ref, ok := GetRef[A](h)
	require.True(t, ok)
	assert.Equal(t, 42, ref.N)
	assert.Equal(t, 1, h.calls["A"])
}

func TestGetRefPointerPlugin(t *testing.T) {
	h := newExtended()

	c, ok := GetRef[*counter](h)
	require.True(t, ok)
	c.hits++

	c2, ok := GetRef[*counter](h)
	require.True(t, ok)
	assert.Same(t, c, c2)
	assert.Equal(t, 1, c2.hits)
	assert.Equal(t, 1, h.calls["counter"])
}

func TestGetReturnsIndependentClone(t *testing.T) {
	h := newExtended()

	first, ok := Get[tags](h)
	require.True(t, ok)
	first.Values[0] = "changed"

	// Later inserts do not disturb the clone.
	_, ok = GetRef[A](h)
	require.True(t, ok)
	_, ok = GetRef[*counter](h)
	require.True(t, ok)

	assert.Equal(t, []string{"changed", "b"}, first.Values)

	second, ok := Get[tags](h)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, second.Values)
	assert.Equal(t, 1, h.calls["tags"])
}

func TestComputeNeverCaches(t *testing.T) {
	h := newExtended()

	_, ok := Compute[A](h)
	require.True(t, ok)
	_, ok = Compute[A](h)
	require.True(t, ok)

	assert.Equal(t, 2, h.calls["A"])
	assert.False(t, anymap.Contains[A](h.Extensions()))
}

// plain has no store.
type plain struct {
	base  int
	calls *int
}

type doubled int

func (doubled) Create(p plain) (doubled, bool) {
	*p.calls++
	return doubled(p.base * 2), true
}

func TestComputeOnNonExtensibleHost(t *testing.T) {
	var calls int
	p := plain{base: 21, calls: &calls}

	d, ok := Compute[doubled](p)
	require.True(t, ok)
	assert.Equal(t, doubled(42), d)

	_, ok = Compute[doubled](p)
	require.True(t, ok)
	assert.Equal(t, 2, calls)
}

func TestStorageZeroValue(t *testing.T) {
	var s Storage
	assert.Equal(t, 0, s.ExtensionsMut().Len())
	assert.Same(t, s.ExtensionsMut(), s.ExtensionsMut())

	s = NewStorage(anymap.WithCapacity(4))
	anymap.Insert(s.ExtensionsMut(), 1)
	assert.True(t, anymap.Contains[int](s.Extensions()))
}

type (
	One   int
	Two   int
	Three int
	Four  int
	Five  int
	Six   int
	Seven int
	Eight int
	Nine  int
	Ten   int
)

func (One) Create(*extended) (One, bool)     { return 1, true }
func (Two) Create(*extended) (Two, bool)     { return 2, true }
func (Three) Create(*extended) (Three, bool) { return 3, true }
func (Four) Create(*extended) (Four, bool)   { return 4, true }
func (Five) Create(*extended) (Five, bool)   { return 5, true }
func (Six) Create(*extended) (Six, bool)     { return 6, true }
func (Seven) Create(*extended) (Seven, bool) { return 7, true }
func (Eight) Create(*extended) (Eight, bool) { return 8, true }
func (Nine) Create(*extended) (Nine, bool)   { return 9, true }
func (Ten) Create(*extended) (Ten, bool)     { return 10, true }

func (v One) Clone() One     { return v }
func (v Two) Clone() Two     { return v }
func (v Three) Clone() Three { return v }
func (v Four) Clone() Four   { return v }
func (v Five) Clone() Five   { return v }
func (v Six) Clone() Six     { return v }
func (v Seven) Clone() Seven { return v }
func (v Eight) Clone() Eight { return v }
func (v Nine) Clone() Nine   { return v }
func (v Ten) Clone() Ten     { return v }

func TestSimple(t *testing.T) {
	h := newExtended()

	one, ok := GetRef[One](h)
	require.True(t, ok)
	assert.Equal(t, One(1), one)

	two, ok := GetRef[Two](h)
	require.True(t, ok)
	assert.Equal(t, Two(2), two)

	three, ok := GetRef[Three](h)
	require.True(t, ok)
	assert.Equal(t, Three(3), three)
}

func TestGrowthPreservesEarlierPlugins(t *testing.T) {
	h := newExtended()
	Get[One](h)
	Get[Two](h)
	Get[Three](h)
	Get[Four](h)
	Get[Five](h)
	Get[Six](h)
	Get[Seven](h)
	Get[Eight](h)
	Get[Nine](h)
	Get[Ten](h)

	require.Equal(t, 10, h.ExtensionsMut().Len())
	one, ok := GetRef[One](h)
	require.True(t, ok)
	assert.Equal(t, One(1), one)
}

// requests holds one accessor per plugin type; each returns the cached
// value as an int.
var requests = []func(*extended) int{
	func(h *extended) int { v, _ := GetRef[One](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Two](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Three](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Four](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Five](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Six](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Seven](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Eight](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Nine](h); return int(v) },
	func(h *extended) int { v, _ := GetRef[Ten](h); return int(v) },
}

func TestOrderIndependence(t *testing.T) {
	indices := make([]int, len(requests))
	for i := range indices {
		indices[i] = i
	}

	rapid.Check(t, func(t *rapid.T) {
		order := rapid.Permutation(indices).Draw(t, "order")
		h := newExtended()
		for _, i := range order {
			requests[i](h)
		}

		if got := h.ExtensionsMut().Len(); got != len(requests) {
			t.Fatalf("stored %d plugins, want %d", got, len(requests))
		}
		for i, request := range requests {
			if got := request(h); got != i+1 {
				t.Fatalf("plugin %d = %d, want %d", i, got, i+1)
			}
		}
	})
}
