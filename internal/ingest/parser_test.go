package ingest

import (
	"strings"
	"testing"
)

func TestParseValidLines(t *testing.T) {
	input := "1 1 0 0 100 0\n2 1 0 1 100 1\n"
	lines, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ID != 1 || lines[0].Weight != 1 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].End.Y != 1 {
		t.Errorf("unexpected second line end: %+v", lines[1].End)
	}
}

func TestParseWrongTokenCountFailsWithLineNumber(t *testing.T) {
	input := "1 1 0 0 100 0\n2 1 0 1 100\n"
	_, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for a malformed line")
	}
	var perr *ParseError
	if !asParseError(err, &perr) {
		t.Fatalf("expected a *ParseError, got %T: %v", err, err)
	}
	if perr.Line != 2 {
		t.Errorf("reported line = %d, want 2", perr.Line)
	}
}

func TestParseUnparseableNumberFails(t *testing.T) {
	input := "1 1 0 0 abc 0\n"
	_, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for an unparseable number")
	}
}

func TestParseEmptyInputYieldsNoLines(t *testing.T) {
	lines, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error on empty input: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}
