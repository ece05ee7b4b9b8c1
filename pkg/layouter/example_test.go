package layouter_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/treelayout/pkg/layouter"
	"github.com/matzehuels/treelayout/pkg/render/sink"
	"github.com/matzehuels/treelayout/pkg/tree"
)

func Example() {
	t := tree.New[tree.Label]()
	s, _ := t.SetRoot(tree.Label{Text: "S"})
	_, _ = t.AddChild(s, tree.Label{Text: "NP"})
	_, _ = t.AddChild(s, tree.Label{Text: "VP", Emphasis: true})

	_, err := layouter.New(t,
		layouter.WithDrawer(sink.NewText()),
		layouter.WithWriter(os.Stdout),
	).Write()
	if err != nil {
		fmt.Println(err)
	}
	// Output:
	//        S
	//      /   \
	//    /       \
	// NP         *VP*
}
