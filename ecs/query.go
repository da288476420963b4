package ecs

// intersect returns the ids present in every store, walking the smallest.
// A nil store means no entity has that component, so the result is empty.
func intersect(stores ...store) []entityID {
	if len(stores) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range stores {
		if s == nil {
			return nil
		}
		if s.len() < stores[smallest].len() {
			smallest = i
		}
	}

	base := stores[smallest].ids()
	out := make([]entityID, 0, len(base))
	for _, id := range base {
		ok := true
		for i, s := range stores {
			if i != smallest && !s.has(id) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	return out
}
