// Package stream encodes a refinement stream as newline-delimited JSON.
//
// Each Reset produces one "reset" record carrying the full fragment
// snapshot; each successful Step produces one "step" record carrying the
// removed fragment's ID and the four added fragments. A consumer replaying
// the stream can maintain the partition incrementally: remove one visual by
// ID, add four.
package stream

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	quadsplit "github.com/nemutas/quadtree-split"
)

// Record kinds.
const (
	KindReset = "reset"
	KindStep  = "step"
)

// Fragment is the wire form of a quadsplit.Fragment.
type Fragment struct {
	ID       uint64  `json:"id"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Right    float64 `json:"right"`
	Bottom   float64 `json:"bottom"`
	R        float64 `json:"r"`
	G        float64 `json:"g"`
	B        float64 `json:"b"`
	Score    float64 `json:"score"`
	Weighted float64 `json:"weighted"`
}

// Record is one line of the stream.
type Record struct {
	Kind string `json:"kind"`

	// Fragments is the full snapshot; set on "reset" records.
	Fragments []Fragment `json:"fragments,omitempty"`

	// Removed and Added describe the delta; set on "step" records.
	Removed uint64     `json:"removed,omitempty"`
	Added   []Fragment `json:"added,omitempty"`
}

// Writer emits refinement records to an underlying io.Writer, one JSON
// object per line. Writer is not safe for concurrent use, matching the
// engine's single-owner model.
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a stream writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// WriteReset emits a "reset" record with the full fragment snapshot,
// typically eng.Fragments() right after Reset or SelectSource.
func (w *Writer) WriteReset(frags []quadsplit.Fragment) error {
	rec := Record{Kind: KindReset, Fragments: make([]Fragment, len(frags))}
	for i, f := range frags {
		rec.Fragments[i] = fromFragment(f)
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("stream: encode reset: %w", err)
	}
	return nil
}

// WriteStep emits a "step" record for a successful step. Results that made
// no progress produce no record.
func (w *Writer) WriteStep(res quadsplit.StepResult) error {
	if !res.Progressed {
		return nil
	}
	rec := Record{
		Kind:    KindStep,
		Removed: res.Removed.ID,
		Added:   make([]Fragment, len(res.Added)),
	}
	for i, f := range res.Added {
		rec.Added[i] = fromFragment(f)
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("stream: encode step: %w", err)
	}
	return nil
}

// Reader decodes records from a stream produced by Writer.
type Reader struct {
	dec *json.Decoder
}

// NewReader creates a stream reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(r)}
}

// Read returns the next record, or io.EOF at end of stream.
func (r *Reader) Read() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("stream: decode record: %w", err)
	}
	return rec, nil
}

func fromFragment(f quadsplit.Fragment) Fragment {
	return Fragment{
		ID:       f.ID,
		Left:     f.Region.Left,
		Top:      f.Region.Top,
		Right:    f.Region.Right,
		Bottom:   f.Region.Bottom,
		R:        f.Stats.Avg.R,
		G:        f.Stats.Avg.G,
		B:        f.Stats.Avg.B,
		Score:    f.Stats.Score,
		Weighted: f.Weighted,
	}
}
