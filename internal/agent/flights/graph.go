// Package flights implements the flights domain sub-graph: intent
// classification, schema-constrained parameter extraction and conditional
// tool invocation, composed over the shared graph engine.
package flights

import (
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/graph"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

// State is the unit of truth passed between flight nodes. It is created
// fresh per turn, traversed sequentially and never shared.
type State struct {
	Messages  []*model.Message
	UI        []model.UIDirective
	Timestamp time.Time

	// Write-once slots: set by one node, read-only downstream.
	Intent             Intent
	SearchParams       *SearchParams
	BookingParams      *BookingExtraction
	CancellationParams *CancellationParams
}

// Update is a node's partial state update, merged by Reduce.
type Update struct {
	Messages  []*model.Message
	UI        []model.UIUpdate
	Timestamp time.Time

	Intent             Intent
	SearchParams       *SearchParams
	BookingParams      *BookingExtraction
	CancellationParams *CancellationParams
}

// Reduce merges an update into state: messages append, UI directives upsert
// or remove by id, the timestamp is last-write-wins, and parameter slots and
// intent are write-once within a turn.
func Reduce(s State, u Update) State {
	s.Messages = model.AppendMessages(s.Messages, u.Messages)
	s.UI = model.ApplyUI(s.UI, u.UI)
	if !u.Timestamp.IsZero() {
		s.Timestamp = u.Timestamp
	}
	if s.Intent == "" && u.Intent != "" {
		s.Intent = u.Intent
	}
	if s.SearchParams == nil && u.SearchParams != nil {
		s.SearchParams = u.SearchParams
	}
	if s.BookingParams == nil && u.BookingParams != nil {
		s.BookingParams = u.BookingParams
	}
	if s.CancellationParams == nil && u.CancellationParams != nil {
		s.CancellationParams = u.CancellationParams
	}
	return s
}

const (
	nodeClassify       = "classify"
	nodeExtractSearch  = "extractSearch"
	nodeExtractBooking = "extractBooking"
	nodeExtractCancel  = "extractCancellation"
	nodeCallTools      = "callTools"
)

// Config wires the flights graph's collaborators.
type Config struct {
	Model   model.ChatModel
	Service Service

	// Now is injectable for deterministic date inference; defaults to
	// time.Now.
	Now func() time.Time

	// StrictModelErrors controls what happens when the language-model call
	// itself fails during classification or extraction. False (the default)
	// converts the failure into a plain assistant message and terminates the
	// turn; true propagates the error out of Invoke.
	StrictModelErrors bool
}

// NewGraph compiles the flights sub-graph:
//
//	start → classify → {extractSearch|extractBooking|extractCancellation}
//	      → {callTools | END}
func NewGraph(cfg Config) (*graph.Runnable[State, Update], error) {
	n := newNodes(cfg)

	g := graph.New("flights", Reduce)
	g.AddNode(nodeClassify, n.Classify)
	g.AddNode(nodeExtractSearch, n.ExtractSearch)
	g.AddNode(nodeExtractBooking, n.ExtractBooking)
	g.AddNode(nodeExtractCancel, n.ExtractCancellation)
	g.AddNode(nodeCallTools, n.CallTools)

	g.AddEdge(graph.Start, nodeClassify)
	g.AddBranch(nodeClassify, routeAfterClassify)
	g.AddBranch(nodeExtractSearch, func(s State) string {
		if s.SearchParams == nil {
			return graph.End
		}
		return nodeCallTools
	})
	g.AddBranch(nodeExtractBooking, func(s State) string {
		if s.BookingParams == nil {
			return graph.End
		}
		return nodeCallTools
	})
	g.AddBranch(nodeExtractCancel, func(s State) string {
		if s.CancellationParams == nil {
			return graph.End
		}
		return nodeCallTools
	})
	g.AddEdge(nodeCallTools, graph.End)

	return g.Compile()
}

// routeAfterClassify branches on the classified intent; anything outside the
// known set routes to search, the least destructive path.
func routeAfterClassify(s State) string {
	switch s.Intent {
	case IntentBook:
		return nodeExtractBooking
	case IntentCancel:
		return nodeExtractCancel
	default:
		return nodeExtractSearch
	}
}
