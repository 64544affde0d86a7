package domain

import "slices"

// CartItem is one cart line. (ID, Color) identifies a line; an empty Color
// means the product was added without one.
type CartItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
}

func (it CartItem) Subtotal() int64 {
	return it.Price * int64(it.Quantity)
}

func (it CartItem) Is(id int, color string) bool {
	return it.ID == id && it.Color == color
}

func Index(lines []CartItem, id int, color string) int {
	return slices.IndexFunc(lines, func(it CartItem) bool { return it.Is(id, color) })
}

func Clone(lines []CartItem) []CartItem {
	if lines == nil {
		return []CartItem{}
	}
	return slices.Clone(lines)
}

// Reconcile returns lines with incoming merged in: its quantity (at least 1)
// is added to the matching line, or it is appended as a new line.
func Reconcile(lines []CartItem, incoming CartItem) []CartItem {
	if incoming.Quantity < 1 {
		incoming.Quantity = 1
	}

	next := Clone(lines)
	if i := Index(next, incoming.ID, incoming.Color); i >= 0 {
		next[i].Quantity += incoming.Quantity
		return next
	}
	return append(next, incoming)
}

// SetQuantity reports false when nothing changed. n < 1 removes the line.
func SetQuantity(lines []CartItem, id int, color string, n int) ([]CartItem, bool) {
	i := Index(lines, id, color)
	if i < 0 {
		return lines, false
	}
	if n < 1 {
		return Remove(lines, id, color)
	}
	if lines[i].Quantity == n {
		return lines, false
	}
	next := Clone(lines)
	next[i].Quantity = n
	return next, true
}

func Remove(lines []CartItem, id int, color string) ([]CartItem, bool) {
	i := Index(lines, id, color)
	if i < 0 {
		return lines, false
	}
	next := Clone(lines)
	return slices.Delete(next, i, i+1), true
}

// Recolor moves the (id, from) line to color to. If an (id, to) line already
// exists the quantities are merged into it and the recolored line is dropped.
func Recolor(lines []CartItem, id int, from, to string) ([]CartItem, bool) {
	if from == to {
		return lines, false
	}
	i := Index(lines, id, from)
	if i < 0 {
		return lines, false
	}

	next := Clone(lines)
	if j := Index(next, id, to); j >= 0 {
		next[j].Quantity += next[i].Quantity
		return slices.Delete(next, i, i+1), true
	}
	next[i].Color = to
	return next, true
}

// Subtract takes each taken line's quantity off the matching line and drops
// lines that reach zero. Taken lines no longer in the cart are ignored.
func Subtract(lines, taken []CartItem) ([]CartItem, bool) {
	next := Clone(lines)
	changed := false
	for _, t := range taken {
		i := Index(next, t.ID, t.Color)
		if i < 0 || t.Quantity < 1 {
			continue
		}
		changed = true
		next[i].Quantity -= t.Quantity
		if next[i].Quantity < 1 {
			next = slices.Delete(next, i, i+1)
		}
	}
	if !changed {
		return lines, false
	}
	return next, true
}

// Merge folds lines sharing an (ID, Color) into the first of them.
func Merge(lines []CartItem) []CartItem {
	out := make([]CartItem, 0, len(lines))
	for _, it := range lines {
		if i := Index(out, it.ID, it.Color); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

func TotalPrice(lines []CartItem) int64 {
	var total int64
	for _, it := range lines {
		total += it.Subtotal()
	}
	return total
}

func TotalItems(lines []CartItem) int {
	var n int
	for _, it := range lines {
		n += it.Quantity
	}
	return n
}
