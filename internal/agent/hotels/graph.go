// Package hotels implements the hotels domain sub-graph. Hotels has a single
// action, so the graph starts directly at parameter extraction and routes to
// tool invocation only when a full parameter set was produced.
package hotels

import (
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/graph"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

// State is the unit of truth passed between hotel nodes.
type State struct {
	Messages  []*model.Message
	UI        []model.UIDirective
	Timestamp time.Time

	// SearchParams is a write-once slot set by extraction.
	SearchParams *SearchParams
}

// Update is a node's partial state update, merged by Reduce.
type Update struct {
	Messages  []*model.Message
	UI        []model.UIUpdate
	Timestamp time.Time

	SearchParams *SearchParams
}

// Reduce merges an update into state with the same semantics as the flights
// reducer: append messages, upsert or remove UI by id, last-write-wins
// timestamp, write-once parameter slot.
func Reduce(s State, u Update) State {
	s.Messages = model.AppendMessages(s.Messages, u.Messages)
	s.UI = model.ApplyUI(s.UI, u.UI)
	if !u.Timestamp.IsZero() {
		s.Timestamp = u.Timestamp
	}
	if s.SearchParams == nil && u.SearchParams != nil {
		s.SearchParams = u.SearchParams
	}
	return s
}

const (
	nodeExtraction = "extraction"
	nodeCallTools  = "callTools"
)

// Config wires the hotels graph's collaborators.
type Config struct {
	Model   model.ChatModel
	Service Service

	// Now is injectable for deterministic date inference; defaults to
	// time.Now.
	Now func() time.Time

	// StrictModelErrors propagates model-call failures instead of
	// converting them into a terminating assistant message.
	StrictModelErrors bool
}

// NewGraph compiles the hotels sub-graph:
//
//	start → extraction → {callTools | END}
func NewGraph(cfg Config) (*graph.Runnable[State, Update], error) {
	n := newNodes(cfg)

	g := graph.New("hotels", Reduce)
	g.AddNode(nodeExtraction, n.ExtractSearch)
	g.AddNode(nodeCallTools, n.CallTools)

	g.AddEdge(graph.Start, nodeExtraction)
	g.AddBranch(nodeExtraction, func(s State) string {
		if s.SearchParams == nil {
			return graph.End
		}
		return nodeCallTools
	})
	g.AddEdge(nodeCallTools, graph.End)

	return g.Compile()
}
