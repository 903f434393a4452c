package graph

import (
	"context"
	"strings"
	"testing"
)

type testState struct {
	visited []string
	stop    bool
}

type testUpdate struct {
	visited string
	stop    bool
}

func apply(s testState, u testUpdate) testState {
	if u.visited != "" {
		s.visited = append(s.visited, u.visited)
	}
	s.stop = s.stop || u.stop
	return s
}

func visit(name string) NodeFunc[testState, testUpdate] {
	return func(ctx context.Context, s testState) (testUpdate, error) {
		return testUpdate{visited: name}, nil
	}
}

func TestInvokeSequentialTraversal(t *testing.T) {
	g := New("test", apply)
	g.AddNode("a", visit("a"))
	g.AddNode("b", visit("b"))
	g.AddEdge(Start, "a")
	g.AddEdge("a", "b")
	g.AddEdge("b", End)

	r, err := g.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	final, err := r.Invoke(context.Background(), testState{})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := strings.Join(final.visited, ","); got != "a,b" {
		t.Errorf("traversal order = %q, want a,b", got)
	}
}

func TestInvokeBranchRouting(t *testing.T) {
	g := New("test", apply)
	g.AddNode("decide", func(ctx context.Context, s testState) (testUpdate, error) {
		return testUpdate{visited: "decide", stop: true}, nil
	})
	g.AddNode("taken", visit("taken"))
	g.AddNode("skipped", visit("skipped"))
	g.AddEdge(Start, "decide")
	g.AddBranch("decide", func(s testState) string {
		if s.stop {
			return "taken"
		}
		return "skipped"
	})
	g.AddEdge("taken", End)
	g.AddEdge("skipped", End)

	r, err := g.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	final, err := r.Invoke(context.Background(), testState{})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := strings.Join(final.visited, ","); got != "decide,taken" {
		t.Errorf("traversal = %q, want decide,taken", got)
	}
}

func TestCompileRejectsMissingEntry(t *testing.T) {
	g := New("test", apply)
	g.AddNode("a", visit("a"))
	g.AddEdge("a", End)

	if _, err := g.Compile(); err == nil {
		t.Fatal("expected compile error for missing entry edge")
	}
}

func TestCompileRejectsDanglingEdge(t *testing.T) {
	g := New("test", apply)
	g.AddNode("a", visit("a"))
	g.AddEdge(Start, "a")
	g.AddEdge("a", "ghost")

	if _, err := g.Compile(); err == nil {
		t.Fatal("expected compile error for edge to unknown node")
	}
}

func TestCompileRejectsDeadEndNode(t *testing.T) {
	g := New("test", apply)
	g.AddNode("a", visit("a"))
	g.AddNode("b", visit("b"))
	g.AddEdge(Start, "a")
	g.AddEdge("a", "b")

	if _, err := g.Compile(); err == nil {
		t.Fatal("expected compile error for node without outgoing edge")
	}
}

func TestInvokeStepLimitGuardsCycles(t *testing.T) {
	g := New("test", apply)
	g.AddNode("a", visit("a"))
	g.AddBranch("a", func(testState) string { return "a" })
	g.AddEdge(Start, "a")

	r, err := g.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if _, err := r.Invoke(context.Background(), testState{}); err == nil {
		t.Fatal("expected step-limit error for cyclic routing")
	}
}
