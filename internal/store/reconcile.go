package store

// Upsert merges e into items by identity. A new identity is appended; an existing
// one is replaced at its current position. The input slice is never modified.
func Upsert[E any, ID comparable](items []E, e E, key func(E) ID) []E {
	id := key(e)
	for i := range items {
		if key(items[i]) == id {
			out := make([]E, len(items))
			copy(out, items)
			out[i] = e
			return out
		}
	}
	out := make([]E, len(items), len(items)+1)
	copy(out, items)
	return append(out, e)
}

// Remove drops the item with the given identity. When no item matches, items is
// returned as is and removed is false. The input slice is never modified.
func Remove[E any, ID comparable](items []E, id ID, key func(E) ID) (out []E, removed bool) {
	for i := range items {
		if key(items[i]) != id {
			continue
		}
		out = make([]E, 0, len(items)-1)
		out = append(out, items[:i]...)
		out = append(out, items[i+1:]...)
		return out, true
	}
	return items, false
}
