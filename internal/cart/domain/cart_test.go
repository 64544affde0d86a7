package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func line(id int, color string, qty int) CartItem {
	return CartItem{ID: id, Name: "item", Price: 1000, Color: color, Quantity: qty}
}

func TestReconcile(t *testing.T) {
	t.Run("new line appended", func(t *testing.T) {
		got := Reconcile(nil, line(1, "#FFF", 2))
		assert.Equal(t, []CartItem{line(1, "#FFF", 2)}, got)
	})

	t.Run("same id and color merges", func(t *testing.T) {
		got := Reconcile([]CartItem{line(1, "#FFF", 2)}, line(1, "#FFF", 3))
		assert.Equal(t, []CartItem{line(1, "#FFF", 5)}, got)
	})

	t.Run("different color is a separate line", func(t *testing.T) {
		got := Reconcile([]CartItem{line(1, "#FFF", 2)}, line(1, "#000", 1))
		assert.Len(t, got, 2)
	})

	t.Run("quantity below one counts as one", func(t *testing.T) {
		got := Reconcile(nil, line(1, "", 0))
		assert.Equal(t, 1, got[0].Quantity)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		in := []CartItem{line(1, "#FFF", 2)}
		_ = Reconcile(in, line(1, "#FFF", 3))
		assert.Equal(t, 2, in[0].Quantity)
	})
}

func TestSetQuantity(t *testing.T) {
	in := []CartItem{line(1, "#FFF", 2), line(2, "", 1)}

	got, changed := SetQuantity(in, 1, "#FFF", 7)
	assert.True(t, changed)
	assert.Equal(t, 7, got[0].Quantity)
	assert.Equal(t, 2, in[0].Quantity)

	got, changed = SetQuantity(in, 1, "#FFF", 0)
	assert.True(t, changed)
	assert.Equal(t, []CartItem{line(2, "", 1)}, got)

	_, changed = SetQuantity(in, 9, "", 3)
	assert.False(t, changed)

	_, changed = SetQuantity(in, 2, "", 1)
	assert.False(t, changed, "same quantity")
}

func TestRecolor(t *testing.T) {
	cases := []struct {
		name        string
		in          []CartItem
		from, to    string
		want        []CartItem
		wantChanged bool
	}{
		{
			name:        "plain recolor keeps position",
			in:          []CartItem{line(1, "#AAA", 2), line(2, "", 1)},
			from:        "#AAA",
			to:          "#BBB",
			want:        []CartItem{line(1, "#BBB", 2), line(2, "", 1)},
			wantChanged: true,
		},
		{
			name:        "collision merges into existing line",
			in:          []CartItem{line(1, "#AAA", 2), line(1, "#BBB", 3)},
			from:        "#AAA",
			to:          "#BBB",
			want:        []CartItem{line(1, "#BBB", 5)},
			wantChanged: true,
		},
		{
			name: "missing line is a no-op",
			in:   []CartItem{line(1, "#AAA", 2)},
			from: "#CCC",
			to:   "#BBB",
			want: []CartItem{line(1, "#AAA", 2)},
		},
		{
			name: "same color is a no-op",
			in:   []CartItem{line(1, "#AAA", 2)},
			from: "#AAA",
			to:   "#AAA",
			want: []CartItem{line(1, "#AAA", 2)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := Recolor(tc.in, 1, tc.from, tc.to)
			assert.Equal(t, tc.wantChanged, changed)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	lines := []CartItem{
		{ID: 1, Price: 2000000, Quantity: 1},
		{ID: 2, Price: 1500, Quantity: 3},
	}
	assert.Equal(t, int64(2004500), TotalPrice(lines))
	assert.Equal(t, 4, TotalItems(lines))
	assert.Zero(t, TotalPrice(nil))
	assert.Zero(t, TotalItems(nil))
}

func TestSubtract(t *testing.T) {
	in := []CartItem{line(1, "#FFF", 3), line(2, "", 1), line(3, "#000", 2)}

	got, changed := Subtract(in, []CartItem{line(1, "#FFF", 2), line(2, "", 1), line(9, "", 1)})
	assert.True(t, changed)
	if diff := cmp.Diff([]CartItem{line(1, "#FFF", 1), line(3, "#000", 2)}, got); diff != "" {
		t.Fatalf("Subtract (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, in[0].Quantity, "input is not mutated")

	_, changed = Subtract(in, []CartItem{line(9, "", 1)})
	assert.False(t, changed)
}

func TestMerge(t *testing.T) {
	got := Merge([]CartItem{line(1, "x", 1), line(2, "", 1), line(1, "x", 2)})
	if diff := cmp.Diff([]CartItem{line(1, "x", 3), line(2, "", 1)}, got); diff != "" {
		t.Fatalf("Merge (-want +got):\n%s", diff)
	}
}
