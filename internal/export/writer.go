// Package export writes the three tab-separated output files described in
// spec §6 (C13, fulfilling C10's output contract): the corridor list, and
// the segment list in both its new (with segment_id) and old formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/nerevar/traclusdl/internal/cluster"
	"github.com/nerevar/traclusdl/internal/corridor"
)

// Mode names the discovery strategy used for a run, embedded in output
// filenames.
type Mode string

const (
	Serial   Mode = "Serial"
	Parallel Mode = "Parallel"
)

// Params mirrors the subset of cluster.Params that is encoded into output
// filenames (spec §6's bracketed suffix).
type Params struct {
	MaxDist     float64
	MinDensity  uint64
	MaxAngle    float64
	SegmentSize float64
	Mode        Mode
}

func suffix(p Params) string {
	return fmt.Sprintf("[%.0f-%d-%.0f-%.0f-%s]",
		p.MaxDist, p.MinDensity, p.MaxAngle, p.SegmentSize, p.Mode)
}

// basenameWithoutExt strips the input file's directory and extension; the
// orchestrator writes the resulting names into the input file's directory,
// so outputs sit alongside it with the parameter suffix inserted.
func basenameWithoutExt(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// CorridorListFilename builds "<basename>[<params>].corridorlist.txt".
func CorridorListFilename(inputPath string, p Params) string {
	return fmt.Sprintf("%s%s.corridorlist.txt", basenameWithoutExt(inputPath), suffix(p))
}

// SegmentListNewFilename builds "<basename>[<params>].segmentlist_new.txt".
func SegmentListNewFilename(inputPath string, p Params) string {
	return fmt.Sprintf("%s%s.segmentlist_new.txt", basenameWithoutExt(inputPath), suffix(p))
}

// SegmentListOldFilename builds "<basename>[<params>].segmentlist_old.txt".
func SegmentListOldFilename(inputPath string, p Params) string {
	return fmt.Sprintf("%s%s.segmentlist_old.txt", basenameWithoutExt(inputPath), suffix(p))
}

func lineString(sx, sy, ex, ey float64) string {
	return fmt.Sprintf("LINESTRING(%g %g, %g %g)", sx, sy, ex, ey)
}

// WriteCorridorList writes the corridorlist.txt contents.
func WriteCorridorList(w io.Writer, corridors []corridor.Corridor) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "name\tweight\tcoordinates"); err != nil {
		return err
	}
	for _, c := range corridors {
		line := lineString(c.Start.X, c.Start.Y, c.End.X, c.End.Y)
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%s\n", c.ID, c.Weight, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// segmentRow is the denormalized per-member row shared by both segment
// list formats, before either header/column order is applied.
type segmentRow struct {
	corridorID int
	member     cluster.Member
}

func collectRows(corridors []corridor.Corridor, nonClustered []cluster.Member) []segmentRow {
	var rows []segmentRow
	for _, c := range corridors {
		rows = append(rows, segmentRow{corridorID: c.ID, member: c.Cluster.Seed.Member})
		for _, m := range c.Cluster.Members {
			rows = append(rows, segmentRow{corridorID: c.ID, member: m})
		}
	}
	for _, m := range nonClustered {
		rows = append(rows, segmentRow{corridorID: -1, member: m})
	}
	return rows
}

// WriteSegmentListNew writes the segmentlist_new.txt contents: one row per
// cluster member across all corridors, then every non-clustered
// sub-segment with corridor_id -1 (spec §6).
func WriteSegmentListNew(w io.Writer, corridors []corridor.Corridor, nonClustered []cluster.Member) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "corridor_id\ttrajectory_id\tsegment_id\tweight\tangle\tcoordinates"); err != nil {
		return err
	}
	for _, row := range collectRows(corridors, nonClustered) {
		m := row.member
		end := m.End()
		line := lineString(m.Start.X, m.Start.Y, end.X, end.Y)
		angle := m.Angle()
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%s\t%s\n",
			row.corridorID, m.TrajID, m.SegmentID, m.Weight, formatAngle(angle), line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSegmentListOld writes the segmentlist_old.txt contents: the same
// rows, reordered, with no segment_id column (spec §6).
func WriteSegmentListOld(w io.Writer, corridors []corridor.Corridor, nonClustered []cluster.Member) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "id\tweight\tangle\tcorridor_id\tcoordinates"); err != nil {
		return err
	}
	for _, row := range collectRows(corridors, nonClustered) {
		m := row.member
		end := m.End()
		line := lineString(m.Start.X, m.Start.Y, end.X, end.Y)
		angle := m.Angle()
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%s\t%d\t%s\n",
			m.TrajID, m.Weight, formatAngle(angle), row.corridorID, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatAngle(a float64) string {
	if math.IsNaN(a) {
		a = 0
	}
	return fmt.Sprintf("%g", a)
}
