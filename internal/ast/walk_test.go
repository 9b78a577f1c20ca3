package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInspectOrder(t *testing.T) {
	// (a [b] . c)
	tree := &List{
		Open: special("(", 0),
		Elements: []Expr{
			sym("a", 1),
			&Vector{Open: special("[", 3), Elements: []Expr{sym("b", 4)}},
		},
		Tail: sym("c", 9),
	}

	var visited []string
	Inspect(tree, func(e Expr) bool {
		visited = append(visited, e.NodeType().String()+":"+e.Token().Text)
		return true
	})

	assert.Equal(t, []string{"LIST:(", "CONSTANT:a", "VECTOR:[", "CONSTANT:b", "CONSTANT:c"}, visited)
}

func TestInspectSkipsChildren(t *testing.T) {
	tree := &List{
		Open:     special("(", 0),
		Elements: []Expr{&Vector{Open: special("[", 1), Elements: []Expr{sym("hidden", 2)}}},
	}

	count := 0
	Inspect(tree, func(e Expr) bool {
		count++
		_, isVector := e.(*Vector)
		return !isVector
	})

	assert.Equal(t, 2, count)
}
