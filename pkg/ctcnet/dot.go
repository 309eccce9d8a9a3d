package ctcnet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes the network as an undirected Graphviz graph: domains as
// boxes, contractors as circles, one edge per wiring. Render it with
// `fdp -Tpdf net.dot`. The output is deterministic.
func (n *Network) WriteDOT(w io.Writer, name string) error {
	if name == "" {
		name = "ctcnet"
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "graph %s {\n", dotQuote(name))
	bw.WriteString("  overlap=\"prism\"\n")
	bw.WriteString("  splines=\"compound\"\n")

	bw.WriteString("\n  // domains\n")
	for id := 0; id < n.domains.len(); id++ {
		fmt.Fprintf(bw, "  dom%d [shape=box, label=%s];\n", id, dotQuote(n.domainLabel(id)))
	}

	bw.WriteString("\n  // contractors\n")
	for cid := 0; cid < n.ctcs.len(); cid++ {
		node := n.ctcs.at(cid)
		label := node.label
		if label == "" {
			label = contractorName(node.ctc)
		}
		fmt.Fprintf(bw, "  ctc%d [shape=circle, label=%s];\n", cid, dotQuote(label))
	}

	bw.WriteString("\n  // relations\n")
	for cid := 0; cid < n.ctcs.len(); cid++ {
		seen := make(map[int]bool)
		for _, id := range n.ctcs.at(cid).doms {
			if seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(bw, "  ctc%d -- dom%d;\n", cid, id)
		}
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func (n *Network) domainLabel(id int) string {
	dn := n.domains.at(id)
	switch {
	case dn.label != "":
		return dn.label
	case dn.dom.Name() != "":
		return dn.dom.Name()
	case dn.owned:
		return fmt.Sprintf("tmp%d", id)
	default:
		return fmt.Sprintf("d%d", id)
	}
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
