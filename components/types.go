// Package components defines the Component result type, options and sentinel
// errors of the splitter.
package components

import (
	"errors"

	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/core"
)

// ErrComponentIntegrity signals a component containing a duplicate-labeled
// node. It is only ever logged: the splitter does not repair the input.
var ErrComponentIntegrity = errors.New("components: duplicate node in component")

// Source is the graph surface consumed by Split. *core.EdgeStore satisfies it.
type Source = core.Adjacency

// Component is one connected component.
type Component struct {
	// Nodes in first-insertion order.
	Nodes []core.NodeID

	// Edges of the component, each undirected pair once, ordered by the
	// position of their first endpoint in Nodes.
	Edges []core.Edge

	// Singleton marks a degree-zero node; such components never reach the solver.
	Singleton bool
}

// Len returns the number of nodes.
func (c Component) Len() int { return len(c.Nodes) }

// Option configures Split.
type Option func(*Options)

// Options holds configurable parameters for Split.
type Options struct {
	// Logger receives integrity warnings. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns Options with a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger installs l for integrity warnings. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
