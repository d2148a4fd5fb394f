package tape

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestOutputWritesCell(t *testing.T) {
	var buf bytes.Buffer
	tp := New(4, &buf, strings.NewReader(""))
	cell := byte('A')
	if err := tp.Output(&cell); err != nil {
		t.Fatalf("Output: unexpected error: %v", err)
	}
	if got := buf.String(); got != "A" {
		t.Errorf("Output wrote %q, want %q", got, "A")
	}
}

func TestInputReadsCell(t *testing.T) {
	var buf bytes.Buffer
	tp := New(4, &buf, strings.NewReader("Z"))
	var cell byte
	if err := tp.Input(&cell); err != nil {
		t.Fatalf("Input: unexpected error: %v", err)
	}
	if cell != 'Z' {
		t.Errorf("Input set cell to %q, want %q", cell, 'Z')
	}
}

func TestInputExhausted(t *testing.T) {
	var buf bytes.Buffer
	tp := New(4, &buf, strings.NewReader(""))
	var cell byte
	err := tp.Input(&cell)
	if !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("expected ErrInputExhausted, got %v", err)
	}
}

type errReader struct{ err error }

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }

func TestInputTransportError(t *testing.T) {
	boom := errors.New("boom")
	tp := New(4, &bytes.Buffer{}, errReader{boom})
	var cell byte
	err := tp.Input(&cell)
	if !errors.Is(err, ErrInputTransport) {
		t.Fatalf("expected ErrInputTransport, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped error to be preserved, got %v", err)
	}
}

func TestNewAllocatesZeroedCells(t *testing.T) {
	tp := New(100, &bytes.Buffer{}, strings.NewReader(""))
	if len(tp.Cells) != 100 {
		t.Fatalf("expected 100 cells, got %d", len(tp.Cells))
	}
	for i, c := range tp.Cells {
		if c != 0 {
			t.Fatalf("cell %d not zeroed: %d", i, c)
		}
	}
}
