package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/expand"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/tree"
)

// docSummary describes a tree document.
type docSummary struct {
	Nodes    int
	Leaves   int
	Depth    int
	Expanded int
	Visible  int
	Root     string
}

func summarize(root *tree.Node) docSummary {
	s := docSummary{Root: root.Label()}
	tree.Walk(root, func(n *tree.Node, path []int, _ tree.Key) bool {
		s.Nodes++
		s.Depth = max(s.Depth, len(path))
		if !n.HasChildren() {
			s.Leaves++
		}
		if n.Expanded {
			s.Expanded++
		}
		return true
	})
	state := expand.FromTree(root)
	s.Visible = hierarchy.Build(root, hierarchy.WithVisibility(state.Predicate())).Len()
	return s
}

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Summarize a tree document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := tree.ReadFile(args[0])
			if err != nil {
				return err
			}
			s := summarize(root)
			printKeyValue("Root", s.Root)
			printKeyValue("Nodes", fmt.Sprint(s.Nodes))
			printKeyValue("Leaves", fmt.Sprint(s.Leaves))
			printKeyValue("Depth", fmt.Sprint(s.Depth))
			printKeyValue("Expanded", fmt.Sprint(s.Expanded))
			printKeyValue("Visible", fmt.Sprintf("%d of %d on open", s.Visible, s.Nodes))
			return nil
		},
	}
}
