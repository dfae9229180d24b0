package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/rootlab/internal/roots"
)

var rootsHeader = []string{"method", "index", "root", "iterations", "residual", "start_lo", "start_hi"}

// WriteRootsCSV writes one row per converged root of each method. Chord rows
// carry their bracket, Newton rows their initial guess in start_lo.
func WriteRootsCSV(w io.Writer, res *roots.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rootsHeader); err != nil {
		return err
	}

	for i, r := range res.ChordRoots {
		br := res.ChordIntervals[i]
		row := []string{"chord", strconv.Itoa(i), ff(r), strconv.Itoa(res.ChordIterations[i]),
			ff(res.ChordResiduals[i]), ff(br.Lo), ff(br.Hi)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for i, r := range res.NewtonRoots {
		row := []string{"newton", strconv.Itoa(i), ff(r), strconv.Itoa(res.NewtonIterations[i]),
			ff(res.NewtonResiduals[i]), ff(res.NewtonInitials[i]), ""}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToFile creates path and hands it to write.
func ToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
