package optimizer

import "sort"

// PositionPlaces records, for a position-eligibility group, the number of
// roster slots whose requirement is this group or a strict subset of it
// (min) and the number of slots whose requirement is a strict superset of
// this group and whose players could optionally fill it (optional).
type PositionPlaces struct {
	Min      int
	Optional int
}

// PositionGroups is the output of BuildPositionGroups: direct groups keyed
// by their sorted eligibility tuple, and synthesized not-linked groups for
// pairs/triples of pairwise-disjoint direct groups.
type PositionGroups struct {
	// Direct groups in non-decreasing eligibility-size order, so callers
	// impose single-position constraints before multi-eligibility ones.
	Order     []string
	Positions map[string]PositionPlaces
	// NotLinked groups: synthesized unions of 2 or 3 disjoint direct groups.
	NotLinkedOrder     []string
	NotLinkedPositions map[string]PositionPlaces
	// NotLinkedArity records whether a not-linked group was synthesized
	// from 2 or 3 disjoint direct groups (spec §4.3 step 4 only imposes the
	// extra DK MLB/NBA inequality on 2-way groups).
	NotLinkedArity map[string]int
	// Overlapping marks a direct group that shares players with at least one
	// other direct group (it either absorbs a strict-subset group into its
	// own min, or is itself an optional subset of a broader one — a flex
	// slot on either side of the relationship). See model_build.go's
	// addPositionConstraints for why this, not site, decides "=" vs "≥".
	Overlapping map[string]bool
	// eligibility maps a group key back to its member position tags, for
	// both direct and not-linked groups.
	eligibility map[string][]string
}

func groupKey(positions []string) string {
	sorted := append([]string(nil), positions...)
	sort.Strings(sorted)
	key := ""
	for i, p := range sorted {
		if i > 0 {
			key += "+"
		}
		key += p
	}
	return key
}

func isSubset(a, b []string) bool {
	bs := make(map[string]bool, len(b))
	for _, x := range b {
		bs[x] = true
	}
	for _, x := range a {
		if !bs[x] {
			return false
		}
	}
	return true
}

func intersects(a, b []string) bool {
	bs := make(map[string]bool, len(b))
	for _, x := range b {
		bs[x] = true
	}
	for _, x := range a {
		if bs[x] {
			return true
		}
	}
	return false
}

func equalSet(a, b []string) bool {
	return len(a) == len(b) && isSubset(a, b) && isSubset(b, a)
}

func disjoint(a, b []string) bool {
	return !intersects(a, b)
}

// BuildPositionGroups derives the direct and not-linked position groups from
// a roster template's slot list, per spec §4.1.
func BuildPositionGroups(slots []Slot) PositionGroups {
	// Distinct eligibility tuples appearing in slots.
	seen := make(map[string][]string)
	var keys []string
	for _, s := range slots {
		k := groupKey(s.Eligible)
		if _, ok := seen[k]; !ok {
			seen[k] = s.Eligible
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		return len(seen[keys[i]]) < len(seen[keys[j]])
	})

	positions := make(map[string]PositionPlaces, len(keys))
	overlapping := make(map[string]bool, len(keys))
	eligibility := make(map[string][]string, len(keys))
	for _, k := range keys {
		eligible := seen[k]
		eligibility[k] = eligible

		min, optional := 0, 0
		sawSubset := false
		for _, s := range slots {
			if equalSet(s.Eligible, eligible) {
				min++
				continue
			}
			if isSubset(s.Eligible, eligible) && intersects(s.Eligible, eligible) {
				min++
				sawSubset = true
				continue
			}
			if isSubset(eligible, s.Eligible) && len(s.Eligible) > len(eligible) && intersects(s.Eligible, eligible) {
				optional++
			}
		}
		positions[k] = PositionPlaces{Min: min, Optional: optional}
		overlapping[k] = sawSubset || optional > 0
	}

	notLinked := make(map[string]PositionPlaces)
	notLinkedArity := make(map[string]int)
	var notLinkedOrder []string

	addCombo := func(idxs []int) {
		var combined []string
		var k string
		min, optional := 0, 0
		for i, idx := range idxs {
			if i > 0 {
				if !disjoint(eligibility[keys[idx]], combined) {
					return
				}
			}
			combined = append(combined, eligibility[keys[idx]]...)
			min += positions[keys[idx]].Min
			optional += positions[keys[idx]].Optional
		}
		k = groupKey(combined)
		if _, isDirect := positions[k]; isDirect {
			return
		}
		if _, already := notLinked[k]; already {
			return
		}
		notLinked[k] = PositionPlaces{Min: min, Optional: optional}
		notLinkedArity[k] = len(idxs)
		notLinkedOrder = append(notLinkedOrder, k)
		eligibility[k] = combined
	}

	n := len(keys)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if disjoint(eligibility[keys[i]], eligibility[keys[j]]) {
				addCombo([]int{i, j})
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if disjoint(eligibility[keys[i]], eligibility[keys[j]]) &&
					disjoint(eligibility[keys[i]], eligibility[keys[k]]) &&
					disjoint(eligibility[keys[j]], eligibility[keys[k]]) {
					addCombo([]int{i, j, k})
				}
			}
		}
	}

	return PositionGroups{
		Order:              keys,
		Positions:          positions,
		Overlapping:        overlapping,
		NotLinkedOrder:     notLinkedOrder,
		NotLinkedPositions: notLinked,
		NotLinkedArity:     notLinkedArity,
		eligibility:        eligibility,
	}
}

// Eligible returns the member position tags for a direct or not-linked
// group key.
func (g PositionGroups) Eligible(key string) []string {
	return g.eligibility[key]
}
