// Package ingest parses the line-oriented OD-line input file into
// geometry.ODLine values (C12, fulfilling C10's input contract).
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nerevar/traclusdl/internal/geometry"
)

// ParseError reports a malformed input line, qualified with its 1-based
// line number and the offending line content, per spec §6/§7.
type ParseError struct {
	Line    int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d is malformed: %q: %v", e.Line, e.Content, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads whitespace-separated OD lines from r, one per line:
//
//	line_id weight x_start y_start x_end y_end
//
// Any line with other than six tokens, or an unparseable number, fails the
// entire parse — the core treats malformed input as fatal, not as a
// skip-and-continue condition (spec §7).
func Parse(r io.Reader) ([]geometry.ODLine, error) {
	scanner := bufio.NewScanner(r)
	var lines []geometry.ODLine
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 6 {
			return nil, &ParseError{
				Line:    lineNo,
				Content: text,
				Err:     fmt.Errorf("expected 6 tokens, got %d", len(fields)),
			}
		}

		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: text, Err: fmt.Errorf("line_id: %w", err)}
		}
		weight, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: text, Err: fmt.Errorf("weight: %w", err)}
		}
		xStart, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: text, Err: fmt.Errorf("x_start: %w", err)}
		}
		yStart, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: text, Err: fmt.Errorf("y_start: %w", err)}
		}
		xEnd, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: text, Err: fmt.Errorf("x_end: %w", err)}
		}
		yEnd, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Content: text, Err: fmt.Errorf("y_end: %w", err)}
		}

		lines = append(lines, geometry.ODLine{
			ID:     id,
			Weight: weight,
			Start:  geometry.Point{X: xStart, Y: yStart},
			End:    geometry.Point{X: xEnd, Y: yEnd},
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return lines, nil
}
