package constraint_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host/memory"
)

func Example() {
	h := memory.New()
	eng := constraint.New(h, constraint.WithLogger(log.New(io.Discard)))

	root := memory.NewView("root")
	icon := memory.NewView("icon")
	label := memory.NewView("label")
	root.AddSubview(icon)
	root.AddSubview(label)

	c, _ := eng.At(label).Leading().Eq(eng.At(icon).TrailingPadding().Plus(4))
	fmt.Println(c)

	_, err := eng.At(label).Top().Eq(eng.At(icon).Leading())
	fmt.Println(errors.GetCode(err))
	// Output:
	// label.leading == icon.trailing + 12
	// INCOMPATIBLE_AXIS
}

func ExampleExpression_Priority() {
	h := memory.New()
	eng := constraint.New(h, constraint.WithLogger(log.New(io.Discard)))
	v := memory.NewView("panel")

	c, _ := eng.At(v).Priority(400).Width().Eq(300)
	fmt.Println(c, c.Priority())
	// Output: panel.width == 300 400
}
