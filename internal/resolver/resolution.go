package resolver

import (
	"fmt"
	"strings"

	"github.com/nirinav/nirinav/internal/nav"
)

// Layer names one level of the chain.
type Layer string

const (
	LayerEditor      Layer = "editor"
	LayerMultiplexer Layer = "multiplexer"
	LayerTerminal    Layer = "terminal"
	LayerCompositor  Layer = "compositor"
)

// Step records the decision of one probed layer.
type Step struct {
	Layer    Layer
	Decision nav.Decision
	Err      error
}

func (s Step) String() string {
	return fmt.Sprintf("%s:%s", s.Layer, s.Decision)
}

// Resolution records how a request was resolved: the escalation path walked
// and the layer that performed the action.
type Resolution struct {
	// Layer is the layer that acted.
	Layer Layer
	// Path is every probed layer in order, the acting one last.
	Path []Step
}

// String renders the path, e.g. "editor:boundary terminal:move".
func (r *Resolution) String() string {
	parts := make([]string, len(r.Path))
	for i, step := range r.Path {
		parts[i] = step.String()
	}
	return strings.Join(parts, " ")
}
