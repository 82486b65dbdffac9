package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nerevar/traclusdl/internal/geoconv"
)

// convertLine is one parsed row of the lat/lon input: an id, weight, and
// two geographic endpoints, mirroring the core's own OD-line shape before
// the endpoints are projected.
type convertLine struct {
	id, weight uint64
	start, end geoconv.LatLon
}

// runConvert implements the `traclusdl convert` subcommand: projects every
// OD line's lat/lon endpoints onto a local planar tangent frame and writes
// a spec-shaped input file for the core (C17).
func runConvert(args []string) {
	fs := flag.NewFlagSet("traclusdl convert", flag.ExitOnError)
	refLat := fs.Float64("ref-lat", 0, "reference latitude for the tangent plane (default: centroid of all endpoints)")
	refLon := fs.Float64("ref-lon", 0, "reference longitude for the tangent plane (default: centroid of all endpoints)")
	hasRef := fs.Bool("ref", false, "use -ref-lat/-ref-lon instead of the computed centroid")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: traclusdl convert [flags] <lonlat-input-file> <planar-output-file>\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		log.Fatal("opening input: ", err)
	}
	defer in.Close()

	lines, err := parseConvertLines(in)
	if err != nil {
		log.Fatal("parsing input: ", err)
	}

	ref := geoconv.LatLon{Lat: *refLat, Lon: *refLon}
	if !*hasRef {
		endpoints := make([]geoconv.LatLon, 0, len(lines)*2)
		for _, l := range lines {
			endpoints = append(endpoints, l.start, l.end)
		}
		ref = geoconv.Centroid(endpoints)
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		log.Fatal("creating output: ", err)
	}
	defer out.Close()

	if err := writeConvertedLines(out, ref, lines); err != nil {
		log.Fatal("writing output: ", err)
	}
}

func parseConvertLines(r *os.File) ([]convertLine, error) {
	scanner := bufio.NewScanner(r)
	var lines []convertLine
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 6 {
			return nil, fmt.Errorf("line %d: expected 6 fields, got %d", lineNo, len(fields))
		}

		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad id: %w", lineNo, err)
		}
		weight, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad weight: %w", lineNo, err)
		}
		startLat, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad start lat: %w", lineNo, err)
		}
		startLon, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad start lon: %w", lineNo, err)
		}
		endLat, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad end lat: %w", lineNo, err)
		}
		endLon, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad end lon: %w", lineNo, err)
		}

		lines = append(lines, convertLine{
			id:     id,
			weight: weight,
			start:  geoconv.LatLon{Lat: startLat, Lon: startLon},
			end:    geoconv.LatLon{Lat: endLat, Lon: endLon},
		})
	}
	return lines, scanner.Err()
}

func writeConvertedLines(w *os.File, ref geoconv.LatLon, lines []convertLine) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		sx, sy := geoconv.Project(ref, l.start)
		ex, ey := geoconv.Project(ref, l.end)
		if _, err := fmt.Fprintf(bw, "%d %d %g %g %g %g\n", l.id, l.weight, sx, sy, ex, ey); err != nil {
			return err
		}
	}
	return bw.Flush()
}
