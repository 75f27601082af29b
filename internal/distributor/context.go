package distributor

import "github.com/synthpop-dev/synthpop/internal/households"

// candidates tracks households that are willing to absorb leftover
// people of a given kind after the composition handlers run. A
// household may sit on several lists at once.
type candidates struct {
	extraKids        []*households.Household
	withKids         []*households.Household
	extraYoungAdults []*households.Household
	extraAdults      []*households.Household
	extraOld         []*households.Household
}

// registerOn appends h to every given list.
func registerOn(h *households.Household, lists []*[]*households.Household) {
	for _, list := range lists {
		*list = append(*list, h)
	}
}

// removeFromAll deletes h from every list it appears on. Called when a
// household reaches capacity during the leftover pass.
func removeFromAll(h *households.Household, lists []*[]*households.Household) {
	for _, list := range lists {
		kept := (*list)[:0]
		for _, other := range *list {
			if other != h {
				kept = append(kept, other)
			}
		}
		*list = kept
	}
}
