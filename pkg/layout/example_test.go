package layout_test

import (
	"fmt"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/layout"
)

func Example() {
	item := func(id string, w, h float64) *box.Node {
		return box.NewContainer(id, box.Styles{
			Sizing: box.SizingPolicy{Width: box.Px(w).Ptr(), Height: box.Px(h).Ptr()},
		})
	}

	root := box.NewContainer("root", box.Styles{
		FlexDirection:  box.Row,
		JustifyContent: box.JustifySpaceBetween,
		AlignItems:     box.AlignCenter,
	}, item("a", 50, 20), item("b", 50, 40), item("c", 50, 20))

	layout.New().Layout(root, box.Position{}, box.Size{Width: 250, Height: 40})

	for _, c := range root.Children() {
		pos, size := c.Bounds()
		fmt.Printf("%s x=%g y=%g w=%g h=%g\n", c.ID, pos.X, pos.Y, size.Width, size.Height)
	}
	// Output:
	// a x=0 y=10 w=50 h=20
	// b x=100 y=0 w=50 h=40
	// c x=200 y=10 w=50 h=20
}

func ExampleEngine_Layout_percent() {
	root := box.NewContainer("root", box.Styles{FlexDirection: box.Row},
		box.NewContainer("sidebar", box.Styles{
			Sizing: box.SizingPolicy{Width: box.Pct(25).Ptr()},
		}),
		box.NewContainer("main", box.Styles{
			Sizing: box.SizingPolicy{Width: box.Pct(75).Ptr()},
		}),
	)

	layout.New().Layout(root, box.Position{}, box.Size{Width: 400, Height: 300})

	for _, c := range root.Children() {
		pos, size := c.Bounds()
		fmt.Printf("%s x=%g w=%g\n", c.ID, pos.X, size.Width)
	}
	// Output:
	// sidebar x=0 w=100
	// main x=100 w=300
}
