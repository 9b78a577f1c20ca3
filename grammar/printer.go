package grammar

import (
	"fmt"
	"strings"
)

func (p *PropLine) String() string {
	if p.Body == nil {
		return marker + " " + marker
	}
	return fmt.Sprintf("%s %s %s", marker, p.Body.String(), marker)
}

func (b *PropBody) String() string {
	if len(b.Vars) == 0 {
		return b.Mode
	}
	parts := make([]string, 0, len(b.Vars))
	for _, v := range b.Vars {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

func (v *Var) String() string {
	return fmt.Sprintf("%s: %s", v.Name, v.Value)
}
