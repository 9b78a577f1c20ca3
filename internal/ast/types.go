package ast

type NodeType int

const (
	ILLEGAL NodeType = iota
	CONSTANT
	LIST
	VECTOR
)

var nodeTypeNames = [...]string{
	ILLEGAL:  "ILLEGAL",
	CONSTANT: "CONSTANT",
	LIST:     "LIST",
	VECTOR:   "VECTOR",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return nodeTypeNames[ILLEGAL]
	}
	return nodeTypeNames[t]
}
