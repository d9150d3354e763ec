package game

import "math/rand/v2"

// SelectDrawer picks the next drawer from joined (insertion order) given the
// set of players who have drawn since the last rotation reset. Within one
// rotation nobody draws twice before everyone has drawn once. When the
// rotation completes the set resets and the pick is uniform over all joined
// players, which may immediately re-pick the previous drawer.
//
// The input set is not mutated; the updated drawn set is returned.
func SelectDrawer(rng *rand.Rand, drawn map[uint]struct{}, joined []uint) (uint, map[uint]struct{}) {
	if len(drawn) >= len(joined) {
		drawer := joined[rng.IntN(len(joined))]
		return drawer, map[uint]struct{}{drawer: {}}
	}

	remaining := make([]uint, 0, len(joined)-len(drawn))
	for _, id := range joined {
		if _, ok := drawn[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	drawer := remaining[rng.IntN(len(remaining))]

	next := make(map[uint]struct{}, len(drawn)+1)
	for id := range drawn {
		next[id] = struct{}{}
	}
	next[drawer] = struct{}{}
	return drawer, next
}
