package engine

import (
	"math"
	"sort"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func squares(n int) []model.Item {
	items := make([]model.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.NewItemID(strconv.Itoa(i), float64(i), float64(i)))
	}
	return items
}

func TestApproxEq(t *testing.T) {
	assert.True(t, ApproxEq(1.00005, 1.00006))
	assert.True(t, ApproxEq(42, 42))
	assert.True(t, ApproxEq(0, 0.00009))
	assert.False(t, ApproxEq(1.0, 1.1))
	assert.False(t, ApproxEq(0, 0.0001), "tolerance is exclusive")
}

func TestPack_SquaresRegression(t *testing.T) {
	result, err := Pack(squares(100))
	require.NoError(t, err)

	assert.Equal(t, 588.0, result.Packing.W)
	assert.Equal(t, 595.0, result.Packing.H)
	assert.Greater(t, result.Packing.Fill, 0.93)
	assert.Equal(t, 328350.0, result.TotalArea)
	assert.Len(t, result.Placements, 100)
	assert.Len(t, result.FreeSpaces, 86)
	require.NoError(t, Verify(result, 100))
}

func TestPack_BenchPattern(t *testing.T) {
	items, err := GenerateItems(model.PatternBench, 1000, 0)
	require.NoError(t, err)

	result, err := Pack(items)
	require.NoError(t, err)

	assert.Equal(t, 4872.0, result.Packing.W)
	assert.Equal(t, 4780.0, result.Packing.H)
	assert.InDelta(t, 0.9687, result.Packing.Fill, 0.0001)
	require.NoError(t, Verify(result, len(items)))
}

func TestPack_EmptyInput(t *testing.T) {
	result, err := Pack(nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Packing.W)
	assert.Equal(t, 0.0, result.Packing.H)
	assert.Equal(t, 0.0, result.Packing.Fill)
	assert.False(t, math.IsNaN(result.Packing.Fill))
	assert.Empty(t, result.Placements)
	require.Len(t, result.FreeSpaces, 1)
	assert.Equal(t, 0.0, result.FreeSpaces[0].W)
}

func TestPack_SingleItem(t *testing.T) {
	result, err := Pack([]model.Item{model.NewItemID("only", 10, 5)})
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.Packing.W)
	assert.Equal(t, 5.0, result.Packing.H)
	assert.Equal(t, 1.0, result.Packing.Fill)

	require.Len(t, result.Placements, 1)
	p := result.Placements[0]
	assert.Equal(t, model.NewID("only"), p.ID)
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
	assert.Equal(t, 0, p.Index)
}

func TestPack_ZeroAreaItems(t *testing.T) {
	// All items degenerate: fill must be a defined 0, not NaN.
	items := []model.Item{
		model.NewItemID("a", 0, 0),
		model.NewItemID("b", 5, 0),
		model.NewItemID("c", 0, 5),
	}
	result, err := Pack(items)
	require.NoError(t, err)

	assert.Len(t, result.Placements, 3)
	assert.Equal(t, 5.0, result.Packing.W)
	assert.Equal(t, 5.0, result.Packing.H)
	assert.Equal(t, 0.0, result.Packing.Fill)
	require.NoError(t, Verify(result, 3))
}

func TestPack_KnownLayout(t *testing.T) {
	items := []model.Item{
		model.NewItemID("1", 4, 2),
		model.NewItemID("2", 4, 2),
		model.NewItemID("3", 2, 2),
		model.NewItemID("4", 2, 1),
	}
	result, err := Pack(items)
	require.NoError(t, err)

	assert.Equal(t, 4.0, result.Packing.W)
	assert.Equal(t, 6.0, result.Packing.H)
	assert.InDelta(t, 22.0/24.0, result.Packing.Fill, 1e-12)

	type pos struct {
		ID   string
		X, Y float64
	}
	var got []pos
	for _, p := range result.Placements {
		got = append(got, pos{p.ID.String(), p.X, p.Y})
	}
	want := []pos{{"1", 0, 0}, {"2", 0, 2}, {"3", 0, 4}, {"4", 2, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}

	wantFree := []model.Space{
		{X: 0, Y: 6, W: 5, H: math.MaxFloat64},
		{X: 4, Y: 0, W: 1, H: 2},
		{X: 4, Y: 2, W: 1, H: 2},
		{X: 2, Y: 5, W: 3, H: 1},
		{X: 4, Y: 4, W: 1, H: 1},
	}
	if diff := cmp.Diff(wantFree, result.FreeSpaces, cmp.AllowUnexported(model.ID{})); diff != "" {
		t.Errorf("free spaces mismatch (-want +got):\n%s", diff)
	}
}

func TestPack_PerfectGrid(t *testing.T) {
	items := []model.Item{
		model.NewItemID("a", 3, 3),
		model.NewItemID("b", 3, 3),
		model.NewItemID("c", 3, 3),
		model.NewItemID("d", 3, 3),
	}
	result, err := Pack(items)
	require.NoError(t, err)

	assert.Equal(t, 6.0, result.Packing.W)
	assert.Equal(t, 6.0, result.Packing.H)
	assert.Equal(t, 1.0, result.Packing.Fill)
	require.NoError(t, Verify(result, 4))
}

func TestPack_SortsByHeightStable(t *testing.T) {
	items := []model.Item{
		model.NewItemID("short", 1, 1),
		model.NewItemID("tall-a", 1, 5),
		model.NewItemID("mid", 1, 3),
		model.NewItemID("tall-b", 1, 5),
	}
	result, err := Pack(items)
	require.NoError(t, err)

	var order []string
	for _, p := range result.Placements {
		order = append(order, p.ID.String())
	}
	assert.Equal(t, []string{"tall-a", "tall-b", "mid", "short"}, order)

	var indices []int
	for _, p := range result.InInputOrder() {
		indices = append(indices, p.Index)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, indices)
}

func TestPack_ExactMatchUsesStrictEquality(t *testing.T) {
	// Sum at runtime so the width is not folded to an exact constant.
	a, b, c := 0.7, 0.2, 0.1
	almostOne := a + b + c
	require.Less(t, almostOne, 1.0)

	// A 1x1 item splits a width 2 base space leaving a 1x1 strip to its right.
	// An exactly matching second item removes the strip.
	exact, err := Pack([]model.Item{model.NewItemID("a", 1, 1), model.NewItemID("b", 1, 1)})
	require.NoError(t, err)
	assert.Len(t, exact.FreeSpaces, 1)

	// A width within tolerance but not equal falls through to the height
	// match branch, leaving a sliver behind.
	near, err := Pack([]model.Item{model.NewItemID("a", 1, 1), model.NewItemID("b", almostOne, 1)})
	require.NoError(t, err)
	require.Len(t, near.FreeSpaces, 2)
	sliver := near.FreeSpaces[1]
	assert.Greater(t, sliver.W, 0.0)
	assert.Less(t, sliver.W, 1e-4)
	assert.Equal(t, 1.0, sliver.H)

	assert.Equal(t, exact.Packing, near.Packing)
}

func TestPack_Deterministic(t *testing.T) {
	items, err := GenerateItems(model.PatternRandom, 300, 7)
	require.NoError(t, err)

	first, err := Pack(items)
	require.NoError(t, err)
	second, err := Pack(items)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(model.ID{})); diff != "" {
		t.Errorf("packing is not deterministic (-first +second):\n%s", diff)
	}
}

func TestPack_DoesNotMutateInput(t *testing.T) {
	items := squares(20)
	before := make([]model.Item, len(items))
	copy(before, items)

	_, err := Pack(items)
	require.NoError(t, err)
	assert.Equal(t, before, items)
}

func TestPack_CoverageKeepsEveryID(t *testing.T) {
	items, err := GenerateItems(model.PatternRandom, 200, 42)
	require.NoError(t, err)
	items = append(items, model.Item{W: 3, H: 3}) // no ID

	result, err := Pack(items)
	require.NoError(t, err)
	require.NoError(t, Verify(result, len(items)))

	var in, out []string
	for _, it := range items {
		in = append(in, it.ID.String())
	}
	for _, p := range result.Placements {
		out = append(out, p.ID.String())
	}
	sort.Strings(in)
	sort.Strings(out)
	assert.Equal(t, in, out)
}

func TestPack_PropertiesAcrossPatterns(t *testing.T) {
	for _, pattern := range BenchPatterns() {
		for _, n := range []int{1, 2, 17, 250} {
			t.Run(string(pattern)+"/"+strconv.Itoa(n), func(t *testing.T) {
				items, err := GenerateItems(pattern, n, int64(n))
				require.NoError(t, err)

				result, err := Pack(items)
				require.NoError(t, err)
				require.NoError(t, Verify(result, n))

				if result.TotalArea > 0 {
					assert.Greater(t, result.Packing.Fill, 0.0)
					assert.LessOrEqual(t, result.Packing.Fill, 1.0+1e-9)
				}
			})
		}
	}
}

func TestPack_InvalidItems(t *testing.T) {
	tests := []struct {
		name string
		item model.Item
	}{
		{"negative width", model.NewItemID("n", -1, 2)},
		{"negative height", model.NewItemID("n", 1, -2)},
		{"NaN width", model.NewItemID("n", math.NaN(), 2)},
		{"infinite height", model.NewItemID("n", 1, math.Inf(1))},
		{"base space height", model.NewItemID("n", 0, math.MaxFloat64)},
		{"max width", model.NewItemID("n", math.MaxFloat64, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack([]model.Item{model.NewItemID("ok", 1, 1), tt.item})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidItem)
			assert.Contains(t, err.Error(), "item 1 (n)")
		})
	}
}

func TestPack_TotalHeightLimit(t *testing.T) {
	_, err := Pack([]model.Item{model.NewItemID("a", 0, 6e307), model.NewItemID("b", 0, 6e307)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Contains(t, err.Error(), "item 1 (b)")

	result, err := Pack([]model.Item{model.NewItemID("a", 0, 4e307), model.NewItemID("b", 0, 4e307)})
	require.NoError(t, err)
	assert.Equal(t, 8e307, result.Packing.H)
	assert.Equal(t, 0.0, result.Packing.Fill)
}

func TestPlaceAll_ExhaustedFreeSpacePanics(t *testing.T) {
	fr := &frontier{spaces: []model.Space{{W: 2, H: 2}}, tol: 1e-4}
	boxes := []model.Placement{
		{Space: model.Space{ID: model.NewID("fits"), W: 2, H: 2}},
		{Space: model.Space{ID: model.NewID("left"), W: 1, H: 1}, Index: 1},
	}

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected a panic with an error value")
		assert.ErrorIs(t, err, ErrExhaustedFreeSpace)
		assert.Contains(t, err.Error(), "item left")
	}()
	placeAll(fr, boxes)
	t.Fatal("placeAll should panic when the frontier runs out")
}

func TestPlaceAll_Bounds(t *testing.T) {
	fr := newFrontier(5, 1e-4)
	boxes := []model.Placement{
		{Space: model.Space{W: 4, H: 2}},
		{Space: model.Space{W: 3, H: 1}, Index: 1},
	}
	w, h := placeAll(fr, boxes)
	assert.Equal(t, 4.0, w)
	assert.Equal(t, 3.0, h)
}

func TestPack_BoundsNeverShrink(t *testing.T) {
	bench, err := GenerateItems(model.PatternBench, 300, 1)
	require.NoError(t, err)
	random, err := GenerateItems(model.PatternRandom, 300, 7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		items []model.Item
	}{
		{"shelf", []model.Item{
			model.NewItemID("1", 4, 2),
			model.NewItemID("2", 4, 2),
			model.NewItemID("3", 2, 2),
			model.NewItemID("4", 2, 1),
		}},
		{"squares", squares(100)},
		{"bench", bench},
		{"random", random},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Pack(tt.items)
			require.NoError(t, err)

			var w, h float64
			for i, p := range result.Placements {
				nw, nh := math.Max(w, p.Right()), math.Max(h, p.Bottom())
				require.GreaterOrEqual(t, nw, w, "width shrank at placement %d", i)
				require.GreaterOrEqual(t, nh, h, "height shrank at placement %d", i)
				require.LessOrEqual(t, nw, result.Packing.W, "placement %d outside the packing", i)
				require.LessOrEqual(t, nh, result.Packing.H, "placement %d outside the packing", i)
				w, h = nw, nh
			}
			assert.Equal(t, result.Packing.W, w)
			assert.Equal(t, result.Packing.H, h)

			for _, s := range result.VisibleFreeSpaces() {
				assert.LessOrEqual(t, s.Right(), result.Packing.W)
				assert.LessOrEqual(t, s.Bottom(), result.Packing.H)
			}
		})
	}
}

func TestPack_VisibleFreeSpacesDropsBaseAtBoundingHeight(t *testing.T) {
	result, err := Pack([]model.Item{
		model.NewItemID("1", 4, 2),
		model.NewItemID("2", 4, 2),
		model.NewItemID("3", 2, 2),
		model.NewItemID("4", 2, 1),
	})
	require.NoError(t, err)

	base := result.FreeSpaces[0]
	require.Equal(t, math.MaxFloat64, base.H)
	require.Equal(t, result.Packing.H, base.Y, "base space should start at the bounding height")

	want := []model.Space{{X: 2, Y: 5, W: 2, H: 1}}
	if diff := cmp.Diff(want, result.VisibleFreeSpaces(), cmp.AllowUnexported(model.ID{})); diff != "" {
		t.Errorf("visible free spaces mismatch (-want +got):\n%s", diff)
	}
}

func TestPacker_CustomTargetFill(t *testing.T) {
	items := squares(100)

	loose := New(model.PackSettings{TargetFill: 0.5, Tolerance: 1e-4})
	result, err := loose.Pack(items)
	require.NoError(t, err)

	// sqrt(328350 / 0.5) = 810.4 -> start width 811
	assert.LessOrEqual(t, result.Packing.W, 811.0)
	assert.Greater(t, result.Packing.W, 588.0)
	require.NoError(t, Verify(result, len(items)))
}

func TestPacker_ZeroSettingsFallBackToDefaults(t *testing.T) {
	result, err := New(model.PackSettings{}).Pack(squares(100))
	require.NoError(t, err)
	assert.Equal(t, 588.0, result.Packing.W)
	assert.Equal(t, 595.0, result.Packing.H)
}

func TestFrontier_SwapRemove(t *testing.T) {
	base := model.Space{X: 0, Y: 100, W: 100, H: math.MaxFloat64}
	s1 := model.Space{ID: model.NewID("s1"), X: 10, Y: 0, W: 5, H: 5}
	s2 := model.Space{ID: model.NewID("s2"), X: 20, Y: 0, W: 2, H: 2}
	s3 := model.Space{ID: model.NewID("s3"), X: 30, Y: 0, W: 1, H: 1}

	f := &frontier{spaces: []model.Space{base, s1, s2, s3}, tol: 1e-4}
	box := model.Placement{Space: model.Space{W: 5, H: 5}}

	require.True(t, f.place(&box))
	assert.Equal(t, 10.0, box.X)
	assert.Equal(t, 0.0, box.Y)

	// s1 is overwritten by the last space rather than shifting the tail.
	assert.Equal(t, []model.Space{base, s3, s2}, f.spaces)
}

func TestFrontier_SplitInheritsID(t *testing.T) {
	parent := model.Space{ID: model.NewID("p"), X: 0, Y: 0, W: 10, H: 10}
	f := &frontier{spaces: []model.Space{parent}, tol: 1e-4}
	box := model.Placement{Space: model.Space{W: 4, H: 3}}

	require.True(t, f.place(&box))
	require.Len(t, f.spaces, 2)
	assert.Equal(t, model.Space{ID: model.NewID("p"), X: 0, Y: 3, W: 10, H: 7}, f.spaces[0])
	assert.Equal(t, model.Space{ID: model.NewID("p"), X: 4, Y: 0, W: 6, H: 3}, f.spaces[1])
}

func TestFrontier_NoFit(t *testing.T) {
	f := &frontier{spaces: []model.Space{{W: 2, H: 2}}, tol: 1e-4}
	box := model.Placement{Space: model.Space{W: 3, H: 1}}
	assert.False(t, f.place(&box))
	assert.Len(t, f.spaces, 1)
}
