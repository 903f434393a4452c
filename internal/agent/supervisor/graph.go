// Package supervisor implements the top-level dispatch graph: one routing
// decision per turn, unconditional hand-off to the chosen destination, and
// termination afterward. Destinations never route to each other.
package supervisor

import (
	"time"

	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/flights"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/graph"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/hotels"
	"github.com/RafaelAngelo1999/trip-planner-agent/internal/agent/model"
)

// Destination is a routing label produced by the router node.
type Destination string

const (
	DestFlights      Destination = "flights"
	DestHotels       Destination = "hotels"
	DestTripPlanner  Destination = "tripPlanner"
	DestGeneralInput Destination = "generalInput"
	DestWriterAgent  Destination = "writerAgent"
)

// State is the supervisor's turn state. Sub-graphs receive a projection of
// it and their outputs are folded back in by the reducer.
type State struct {
	Messages  []*model.Message
	UI        []model.UIDirective
	Timestamp time.Time

	// Next is set exactly once per turn, by the router.
	Next Destination
}

// Update is a node's partial state update, merged by Reduce.
type Update struct {
	Messages  []*model.Message
	UI        []model.UIUpdate
	Timestamp time.Time

	Next Destination
}

// Reduce merges an update into state: append messages, upsert or remove UI
// by id, last-write-wins timestamp, write-once destination.
func Reduce(s State, u Update) State {
	s.Messages = model.AppendMessages(s.Messages, u.Messages)
	s.UI = model.ApplyUI(s.UI, u.UI)
	if !u.Timestamp.IsZero() {
		s.Timestamp = u.Timestamp
	}
	if s.Next == "" && u.Next != "" {
		s.Next = u.Next
	}
	return s
}

const nodeRouter = "router"

// Config wires the supervisor's collaborators: the routing model, the two
// compiled domain sub-graphs and the leaf response nodes' model.
type Config struct {
	Model   model.ChatModel
	Flights *graph.Runnable[flights.State, flights.Update]
	Hotels  *graph.Runnable[hotels.State, hotels.Update]

	// StrictModelErrors propagates model-call failures out of Invoke
	// instead of degrading to a plain assistant reply.
	StrictModelErrors bool
}

// NewGraph compiles the supervisor graph:
//
//	start → router → {flights|hotels|tripPlanner|generalInput|writerAgent} → END
func NewGraph(cfg Config) (*graph.Runnable[State, Update], error) {
	n := &nodes{
		model:   cfg.Model,
		flights: cfg.Flights,
		hotels:  cfg.Hotels,
		strict:  cfg.StrictModelErrors,
	}

	g := graph.New("supervisor", Reduce)
	g.AddNode(nodeRouter, n.Route)
	g.AddNode(string(DestFlights), n.Flights)
	g.AddNode(string(DestHotels), n.Hotels)
	g.AddNode(string(DestTripPlanner), n.TripPlanner)
	g.AddNode(string(DestGeneralInput), n.GeneralInput)
	g.AddNode(string(DestWriterAgent), n.WriterAgent)

	g.AddEdge(graph.Start, nodeRouter)
	g.AddBranch(nodeRouter, func(s State) string {
		return string(ResolveDestination(string(s.Next)))
	})
	g.AddEdge(string(DestFlights), graph.End)
	g.AddEdge(string(DestHotels), graph.End)
	g.AddEdge(string(DestTripPlanner), graph.End)
	g.AddEdge(string(DestGeneralInput), graph.End)
	g.AddEdge(string(DestWriterAgent), graph.End)

	return g.Compile()
}

// ResolveDestination validates a raw routing answer against the allowed
// label set, defaulting to generalInput on anything else.
func ResolveDestination(raw string) Destination {
	switch Destination(raw) {
	case DestFlights, DestHotels, DestTripPlanner, DestGeneralInput, DestWriterAgent:
		return Destination(raw)
	default:
		return DestGeneralInput
	}
}
