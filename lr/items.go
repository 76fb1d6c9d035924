package lr

import (
	"fmt"
	"strings"

	"github.com/parsival/parsival/lr/iteratable"
)

// Item is an "Earley item": a grammar rule with a dot position between 0 and
// len(RHS) inclusive. Items are values and compare by (rule, dot), which
// makes sets of items cheap to deduplicate.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item with the dot at the far left of a rule,
// together with the symbol right after the dot (nil for epsilon-rules).
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the underlying grammar rule.
func (i Item) Rule() *Rule {
	return i.rule
}

// PeekSymbol returns the symbol right after the dot, or nil if the dot is at
// the end of the rule, i.e. the item is completed.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance returns the item with the dot moved over one symbol.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ::=", i.rule.LHS.Name)
	for k, sym := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	if i.dot == len(i.rule.rhs) {
		b.WriteString(" •")
	}
	return b.String()
}

// newItemSet creates an empty set of items.
func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

func asItem(x interface{}) Item {
	if i, ok := x.(Item); ok {
		return i
	}
	panic(fmt.Sprintf("not an item: %v", x))
}

// itemSetString pretty-prints a set of items.
func itemSetString(S *iteratable.Set) string {
	var b strings.Builder
	b.WriteString("{")
	for k, x := range S.Values() {
		if k > 0 {
			b.WriteString(", ")
		}
		b.WriteString(asItem(x).String())
	}
	b.WriteString("}")
	return b.String()
}

// Dump logs a set of items, one line per item. Debugging helper.
func Dump(S *iteratable.Set) {
	for k, x := range S.Values() {
		tracer().Debugf("  [%2d] %v", k, asItem(x))
	}
}
