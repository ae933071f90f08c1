// Package layout computes positions and sizes for a box tree.
//
// Layout is a two-pass algorithm over a [box.Node] tree:
//
//  1. Estimation (post-order): every node computes its natural size from its
//     content or children and converts its sizing policy into a requested
//     size. Percentages stay pending.
//  2. Allocation (pre-order): every container receives its final box from
//     its parent, then distributes that box among its children.
//
// Allocation of a container runs these steps in order:
//
//   - Percentage resolution: pending percentages on the main axis resolve
//     against the content box. When claims add up to more than 100% they are
//     scaled down so they fill the content box exactly.
//   - Deficit resolution: if children need more room than allocated,
//     children with a flex-shrink factor give up space in proportion to
//     shrink × size. If a deficit remains and overflow is auto or scroll,
//     text wrappers narrow toward a 100px floor and the container is marked
//     as overflowing with a scrollbar thumb ratio of allocated / requested.
//   - Wrapping: with flex-wrap enabled and children too long for one line,
//     children are grouped greedily into lines stacked along the cross axis.
//   - Surplus resolution: leftover main-axis space is distributed according
//     to justify-content.
//   - Cross alignment: children align within their line, whose cross extent
//     is that of its largest child.
//
// Shrinking works on copies of the children's sizes, so [Engine.AllocateSpace]
// may be called again with a different viewport without re-estimating.
//
// # Usage
//
//	engine := layout.New(layout.WithMeasurer(measure.New()))
//	engine.Layout(root, box.Position{}, box.Size{Width: 800, Height: 600})
//
//	for _, c := range root.Children() {
//	    fmt.Println(c.ID, c.Position(), c.Size())
//	}
//
// After a scroll interaction changes a container's scroll position, call
// [Engine.Reflow] on that container to lay out its subtree again in place.
//
// # Preconditions
//
// The engine never returns errors. Missing styles fall back to defaults and
// degenerate arithmetic (zero shrink weight, zero percentage sum) skips the
// step. Allocating a node that was never estimated, or whose children were
// edited since its last estimation, is a programming error and panics.
package layout
