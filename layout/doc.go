// Package layout computes slide cell geometry for paginated output: how many
// slides fit on a page, at what size, and where the grid sits on the page.
//
// The planner is a pure function of the slide aspect ratio and a [Config]:
//
//	plan, err := layout.NewPlan(16.0/9.0, layout.DefaultConfig())
//	if err != nil {
//	    // configuration leaves no usable space
//	}
//	fmt.Println(plan.CellsPerPage)
//
// Sizing works in two phases. A width-first fit divides the available width
// evenly across the row and derives the slide height from the aspect ratio.
// The planner then probes a single additional row and accepts it only when
// the resulting slides keep at least 60% of the width-first slide width, so
// packing more content never shrinks slides past readability.
//
// All dimensions are in points. A [Plan] is immutable once returned and is
// safe to share between goroutines.
package layout
