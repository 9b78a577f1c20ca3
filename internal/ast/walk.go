package ast

// Inspect traverses e depth-first, calling fn for each node: first the node
// itself, then its elements, then a list's dotted tail. When fn returns
// false the node's children are skipped.
func Inspect(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch e := e.(type) {
	case *List:
		for _, element := range e.Elements {
			Inspect(element, fn)
		}
		Inspect(e.Tail, fn)
	case *Vector:
		for _, element := range e.Elements {
			Inspect(element, fn)
		}
	}
}
