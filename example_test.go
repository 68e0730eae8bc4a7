package quadnav_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/quadnav"
	"github.com/hupe1980/quadnav/astar"
)

func Example() {
	nav, err := quadnav.New(3, 3)
	if err != nil {
		panic(err)
	}

	// A 3x3 field with a rock in the middle.
	for y := range 3 {
		for x := range 3 {
			if x == 1 && y == 1 {
				continue
			}
			_ = nav.SetWalkable(x, y, true)
		}
	}

	path, err := nav.FindPath(context.Background(), quadnav.Point{X: 0, Y: 0}, quadnav.Point{X: 2, Y: 2})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(path.Points), path.Points[0], path.Points[len(path.Points)-1])
	fmt.Printf("%.3f\n", path.Cost)

	// Output:
	// 4 (0, 0) (2, 2)
	// 3.414
}

func ExampleNavigator_FindPath_fourDirectional() {
	nav, _ := quadnav.New(3, 1, quadnav.WithMovement(astar.FourDirectional))
	_ = nav.SetWalkable(0, 0, true)
	_ = nav.SetWalkable(2, 0, true)

	path, _ := nav.FindPath(context.Background(), quadnav.Point{X: 0, Y: 0}, quadnav.Point{X: 2, Y: 0})
	fmt.Println(path.Found())

	_ = nav.SetWalkable(1, 0, true)
	path, _ = nav.FindPath(context.Background(), quadnav.Point{X: 0, Y: 0}, quadnav.Point{X: 2, Y: 0})
	fmt.Println(path.Points)

	// Output:
	// false
	// [(0, 0) (1, 0) (2, 0)]
}

func ExampleNavigator_Enumerate() {
	nav, _ := quadnav.New(4, 4)
	for _, p := range []quadnav.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 3, Y: 3}, {X: 0, Y: 3}} {
		_ = nav.SetWalkable(p.X, p.Y, true)
	}

	nav.Enumerate(func(n quadnav.NodeInfo) bool {
		fmt.Println(n.Depth, n.Kind, n.Rect, len(n.Points))
		return true
	})

	// Output:
	// 0 Internal [0,0 4x4] 0
	// 1 Leaf [0,0 2x2] 3
	// 1 Leaf [2,0 2x2] 0
	// 1 Leaf [0,2 2x2] 1
	// 1 Leaf [2,2 2x2] 1
}
