package lr

import (
	"fmt"
	"io"
	"strings"
)

// GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range c.states.Values() {
		s := x.(*CFSMState)
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID, edge.label)
	}
	io.WriteString(w, "}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// forGraphviz formats the items of a state as Dot record lines.
func forGraphviz(s *CFSMState) string {
	var b strings.Builder
	for _, i := range s.Items() {
		b.WriteString(escapeDot(i.String()))
		b.WriteString("\\l")
	}
	return b.String()
}

var dotEscaper = strings.NewReplacer("|", "\\|", "{", "\\{", "}", "\\}", "<", "\\<", ">", "\\>", "\"", "\\\"")

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

// Listing writes a plain-text listing of a CFSM: every state with its
// configuration items, followed by all transitions.
func (c *CFSM) Listing(w io.Writer) {
	for _, s := range c.States() {
		accept := ""
		if s.Accept {
			accept = "  (accept)"
		}
		fmt.Fprintf(w, "state %d%s\n", s.ID, accept)
		for _, i := range s.Items() {
			fmt.Fprintf(w, "    %s\n", i)
		}
	}
	fmt.Fprintln(w)
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(w, "state %d --%s--> state %d\n", edge.from.ID, edge.label.Name, edge.to.ID)
	}
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table, w io.Writer) {
	var symvec = make([]*Symbol, 0, len(lrgen.g.terminals)+len(lrgen.g.nonterminals))
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
		symvec = append(symvec, A)
		return nil
	})
	io.WriteString(w, "</tr>\n")
	states := lrgen.dfa.states.Iterator()
	var td string // table cell
	for states.Next() {
		state := states.Value().(*CFSMState)
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			v1, v2 := table.Values(state.ID, A.TokenType())
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// FirstFollowListing writes the FIRST and FOLLOW sets of every non-terminal
// of a grammar as plain text.
func FirstFollowListing(ga *LRAnalysis, w io.Writer) {
	g := ga.Grammar()
	g.EachNonTerminal(func(A *Symbol) interface{} {
		fmt.Fprintf(w, "FIRST(%s) = %s\n", A.Name, symsetListing(g, ga.First(A)))
		return nil
	})
	fmt.Fprintln(w)
	g.EachNonTerminal(func(A *Symbol) interface{} {
		fmt.Fprintf(w, "FOLLOW(%s) = %s\n", A.Name, symsetListing(g, ga.Follow(A)))
		return nil
	})
}

// symsetListing stringifies a symbol set with terminal names where known.
func symsetListing(g *Grammar, set *SymSet) string {
	values := set.AppendTo(nil)
	names := make([]string, len(values))
	for k, v := range values {
		switch {
		case v == EpsilonType:
			names[k] = "ε"
		case v == EOFType:
			names[k] = "#eof"
		default:
			if t := g.TerminalByValue(v); t != nil {
				names[k] = t.Name
			} else {
				names[k] = fmt.Sprintf("#%d", v)
			}
		}
	}
	return "{ " + strings.Join(names, ", ") + " }"
}
