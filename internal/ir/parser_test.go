package ir

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) []Node {
	t.Helper()
	nodes, err := Parse([]rune(src))
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", src, err)
	}
	return nodes
}

func TestParseCoalescesRuns(t *testing.T) {
	nodes := mustParse(t, "+++>><<---")
	want := []Node{
		{Kind: AddCell, Count: 3},
		{Kind: AdvancePointer, Count: 2},
		{Kind: RetreatPointer, Count: 2},
		{Kind: SubCell, Count: 3},
	}
	assertNodesEqual(t, nodes, want)
}

func TestParseIgnoresComments(t *testing.T) {
	nodes := mustParse(t, "hello+world")
	want := []Node{{Kind: AddCell, Count: 1}}
	assertNodesEqual(t, nodes, want)
}

func TestParseNestedLoop(t *testing.T) {
	nodes := mustParse(t, "[[-]]")
	if len(nodes) != 1 || nodes[0].Kind != Loop {
		t.Fatalf("expected a single top-level Loop, got %v", nodes)
	}
	body := nodes[0].Body
	if len(body) != 1 || body[0].Kind != Loop {
		t.Fatalf("expected one nested Loop, got %v", body)
	}
	if !IsZeroClear(body[0].Body) {
		t.Fatalf("expected inner loop body to be the zero-clear idiom, got %v", body[0].Body)
	}
}

func TestParseUnmatchedOpen(t *testing.T) {
	_, err := Parse([]rune("[[]"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Pos != 0 {
		t.Errorf("expected unmatched '[' reported at position 0, got %d", perr.Pos)
	}
}

func TestParseNestedUnmatchedOpenReportsOutermost(t *testing.T) {
	_, err := Parse([]rune("[["))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Pos != 0 {
		t.Errorf("expected the outermost unmatched '[' (position 0), got %d", perr.Pos)
	}
}

func TestParseUnmatchedClose(t *testing.T) {
	_, err := Parse([]rune("[]]"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Pos != 2 {
		t.Errorf("expected unmatched ']' reported at position 2, got %d", perr.Pos)
	}
}

func TestParseRunLengthSplitsAtCap(t *testing.T) {
	// Exercise the coalescing boundary without allocating maxRunLength
	// runes: build the node list directly the way coalesce would see it.
	var nodes []Node
	nodes = append(nodes, Node{Kind: AddCell, Count: maxRunLength})
	nodes = coalesce(nodes, AddCell)
	if len(nodes) != 2 {
		t.Fatalf("expected a new node once the run hits maxRunLength, got %d nodes", len(nodes))
	}
	if nodes[0].Count != maxRunLength || nodes[1].Count != 1 {
		t.Errorf("expected counts [%d, 1], got [%d, %d]", maxRunLength, nodes[0].Count, nodes[1].Count)
	}
}

func assertNodesEqual(t *testing.T, got, want []Node) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("node count mismatch: got %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i].Kind != want[i].Kind || got[i].Count != want[i].Count {
			t.Errorf("node %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
