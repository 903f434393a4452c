// Package graph implements a small explicit state machine for composing
// agent nodes. Each node receives the accumulated state and returns a partial
// update; a domain-supplied apply function merges updates into state using
// that domain's reducers. Traversal is strictly sequential: one path through
// a tree of conditional branches, no cycles, no parallel joins.
package graph

import (
	"context"
	"fmt"

	logx "github.com/RafaelAngelo1999/trip-planner-agent/pkg/logger"
)

const (
	// Start is the virtual entry point; it has no node function.
	Start = "__start__"
	// End is the shared terminal state.
	End = "__end__"
)

// NodeFunc runs one processing step and returns a partial state update.
type NodeFunc[S, U any] func(ctx context.Context, state S) (U, error)

// RouteFunc picks the destination node after a branch point.
type RouteFunc[S any] func(state S) string

// ApplyFunc merges a node's partial update into the accumulated state.
type ApplyFunc[S, U any] func(state S, update U) S

// Graph accumulates nodes, unconditional edges and conditional branches
// before compilation.
type Graph[S, U any] struct {
	name     string
	apply    ApplyFunc[S, U]
	nodes    map[string]NodeFunc[S, U]
	edges    map[string]string
	branches map[string]RouteFunc[S]
}

// New creates an empty graph. The apply function defines the merge semantics
// for this graph's state and update types.
func New[S, U any](name string, apply ApplyFunc[S, U]) *Graph[S, U] {
	return &Graph[S, U]{
		name:     name,
		apply:    apply,
		nodes:    make(map[string]NodeFunc[S, U]),
		edges:    make(map[string]string),
		branches: make(map[string]RouteFunc[S]),
	}
}

// AddNode registers a processing node under the given name.
func (g *Graph[S, U]) AddNode(name string, fn NodeFunc[S, U]) *Graph[S, U] {
	g.nodes[name] = fn
	return g
}

// AddEdge adds an unconditional transition between two nodes.
func (g *Graph[S, U]) AddEdge(from, to string) *Graph[S, U] {
	g.edges[from] = to
	return g
}

// AddBranch adds a conditional transition; the route function inspects the
// state after the from node ran and returns the next node name (or End).
func (g *Graph[S, U]) AddBranch(from string, route RouteFunc[S]) *Graph[S, U] {
	g.branches[from] = route
	return g
}

// Runnable is a validated, executable graph.
type Runnable[S, U any] struct {
	graph    *Graph[S, U]
	maxSteps int
}

// Compile validates the graph wiring and returns a Runnable.
func (g *Graph[S, U]) Compile() (*Runnable[S, U], error) {
	if g.apply == nil {
		return nil, fmt.Errorf("graph %s: apply function is nil", g.name)
	}
	if _, ok := g.edges[Start]; !ok {
		if _, ok := g.branches[Start]; !ok {
			return nil, fmt.Errorf("graph %s: no entry edge from start", g.name)
		}
	}
	for from, to := range g.edges {
		if from != Start {
			if _, ok := g.nodes[from]; !ok {
				return nil, fmt.Errorf("graph %s: edge from unknown node %q", g.name, from)
			}
		}
		if to != End {
			if _, ok := g.nodes[to]; !ok {
				return nil, fmt.Errorf("graph %s: edge to unknown node %q", g.name, to)
			}
		}
	}
	for from := range g.branches {
		if from != Start {
			if _, ok := g.nodes[from]; !ok {
				return nil, fmt.Errorf("graph %s: branch from unknown node %q", g.name, from)
			}
		}
	}
	for name := range g.nodes {
		_, hasEdge := g.edges[name]
		_, hasBranch := g.branches[name]
		if !hasEdge && !hasBranch {
			return nil, fmt.Errorf("graph %s: node %q has no outgoing edge", g.name, name)
		}
	}

	// The graphs here are trees; the step limit is a guard against a branch
	// function routing back into an already-visited path.
	return &Runnable[S, U]{graph: g, maxSteps: 2 * (len(g.nodes) + 1)}, nil
}

// Invoke runs a single traversal from Start to End, merging each node's
// partial update into the state in traversal order.
func (r *Runnable[S, U]) Invoke(ctx context.Context, state S) (S, error) {
	g := r.graph
	current := Start

	for step := 0; ; step++ {
		if step >= r.maxSteps {
			return state, fmt.Errorf("graph %s: exceeded %d steps at node %q", g.name, r.maxSteps, current)
		}

		next, err := r.next(current, state)
		if err != nil {
			return state, err
		}
		if next == End {
			logx.Debug().Str("graph", g.name).Msg("Graph traversal complete")
			return state, nil
		}

		node, ok := g.nodes[next]
		if !ok {
			return state, fmt.Errorf("graph %s: routed to unknown node %q", g.name, next)
		}

		logx.Debug().Str("graph", g.name).Str("node", next).Msg("Running node")
		update, err := node(ctx, state)
		if err != nil {
			return state, fmt.Errorf("graph %s: node %s: %w", g.name, next, err)
		}
		state = g.apply(state, update)
		current = next
	}
}

func (r *Runnable[S, U]) next(current string, state S) (string, error) {
	if route, ok := r.graph.branches[current]; ok {
		return route(state), nil
	}
	if to, ok := r.graph.edges[current]; ok {
		return to, nil
	}
	return "", fmt.Errorf("graph %s: node %q has no outgoing edge", r.graph.name, current)
}
