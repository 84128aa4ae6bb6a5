package items

// Removal is an item dropped by Prune. Missing is the first requirement that
// has no creatable recipe.
type Removal struct {
	Item    Item
	Missing string
}

// Prune keeps the items that are transitively creatable: every required name
// must be produced by at least one other kept recipe, regardless of rate.
// Items without requirements seed the set and availability propagates from
// there, so requirement cycles with no outside producer are removed.
// Both results preserve input order.
func Prune(list []Item) (kept []Item, removed []Removal) {
	creatable := make([]bool, len(list))
	pending := make([]int, len(list))
	waiting := map[string][]int{}
	produced := map[string]bool{}

	var queue []int
	for i, it := range list {
		names := requiredNames(it)
		pending[i] = len(names)
		for _, n := range names {
			waiting[n] = append(waiting[n], i)
		}
		if pending[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		creatable[i] = true

		name := list[i].Name
		if produced[name] {
			continue
		}
		produced[name] = true
		for _, j := range waiting[name] {
			pending[j]--
			if pending[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	kept = make([]Item, 0, len(list))
	for i, it := range list {
		if creatable[i] {
			kept = append(kept, it)
			continue
		}
		r := Removal{Item: it}
		for _, req := range it.Requires {
			if !produced[req.Name] {
				r.Missing = req.Name
				break
			}
		}
		removed = append(removed, r)
	}
	return kept, removed
}

func requiredNames(it Item) []string {
	if len(it.Requires) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(it.Requires))
	out := make([]string, 0, len(it.Requires))
	for _, r := range it.Requires {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r.Name)
	}
	return out
}
