package ast

import "elread/token"

// Node is implemented by every expression tree node. Positions are byte
// offsets into the buffer the tree was read from.
type Node interface {
	NodePos() int
	NodeEndPos() int
	NodeType() NodeType
	String() string
}

// Expr is one of *Constant, *List or *Vector.
type Expr interface {
	Node
	// Token returns the wrapped token of a Constant, or the opening
	// delimiter of a List or Vector.
	Token() *token.Token
	isExpr()
}

func (*Constant) isExpr() {}
func (*List) isExpr()     {}
func (*Vector) isExpr()   {}

func (c *Constant) NodePos() int    { return c.Tok.Offset }
func (c *Constant) NodeEndPos() int { return c.Tok.End() }
func (*Constant) NodeType() NodeType { return CONSTANT }

func (l *List) NodePos() int { return l.Open.Offset }
func (l *List) NodeEndPos() int {
	if l.Close != nil {
		return l.Close.End()
	}
	if l.Tail != nil {
		return l.Tail.NodeEndPos()
	}
	if n := len(l.Elements); n > 0 {
		return l.Elements[n-1].NodeEndPos()
	}
	return l.Open.End()
}
func (*List) NodeType() NodeType { return LIST }

func (v *Vector) NodePos() int { return v.Open.Offset }
func (v *Vector) NodeEndPos() int {
	if v.Close != nil {
		return v.Close.End()
	}
	if n := len(v.Elements); n > 0 {
		return v.Elements[n-1].NodeEndPos()
	}
	return v.Open.End()
}
func (*Vector) NodeType() NodeType { return VECTOR }
