package host

import (
	"bufio"
	"fmt"
	"io"

	"github.com/akmonengine/switcher"
)

// Recorder is a line sink keeping every batch it receives
type Recorder struct {
	batches [][]switcher.Line
}

// DrawLines records one batch
func (r *Recorder) DrawLines(lines []switcher.Line) {
	r.batches = append(r.batches, append([]switcher.Line(nil), lines...))
}

// Batches returns the recorded batches
func (r *Recorder) Batches() [][]switcher.Line {
	return r.batches
}

// Lines returns every recorded line
func (r *Recorder) Lines() []switcher.Line {
	var lines []switcher.Line
	for _, batch := range r.batches {
		lines = append(lines, batch...)
	}
	return lines
}

// Reset drops the recorded batches
func (r *Recorder) Reset() {
	r.batches = r.batches[:0]
}

// WriteOBJ writes the recorded lines as a Wavefront OBJ file, one object per
// batch. Vertex colors follow the x y z r g b extension.
func (r *Recorder) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# volume boundaries")

	vertex := 1
	for i, batch := range r.batches {
		fmt.Fprintf(bw, "o batch_%d\n", i)
		for _, line := range batch {
			for _, p := range [2][3]float64{line.Start, line.End} {
				fmt.Fprintf(bw, "v %g %g %g %.4f %.4f %.4f\n", p[0], p[1], p[2], line.Color.R, line.Color.G, line.Color.B)
			}
			fmt.Fprintf(bw, "l %d %d\n", vertex, vertex+1)
			vertex += 2
		}
	}

	return bw.Flush()
}
