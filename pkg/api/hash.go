package api

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the document content.
// It covers the frontmatter in order, then every block depth-first. Every
// variable-length field is length-prefixed, so no choice of content can
// make two different documents share an encoding.
func (d Document) Hash() string {
	h := &hashWriter{h: blake3.New()}

	// nil and empty frontmatter render differently.
	if d.Frontmatter == nil {
		h.uint(0)
	} else {
		h.uint(1)
		h.uint(uint64(len(d.Frontmatter)))
		for _, m := range d.Frontmatter {
			h.str(m.Key)
			h.str(m.Value)
		}
	}

	h.uint(uint64(len(d.Blocks)))
	for _, b := range d.Blocks {
		h.block(b)
	}
	return hex.EncodeToString(h.h.Sum(nil))
}

type hashWriter struct {
	h   *blake3.Hasher
	buf []byte
}

func (w *hashWriter) uint(n uint64) {
	w.buf = binary.AppendUvarint(w.buf[:0], n)
	_, _ = w.h.Write(w.buf)
}

func (w *hashWriter) str(s string) {
	w.uint(uint64(len(s)))
	_, _ = w.h.Write([]byte(s))
}

func (w *hashWriter) flag(b bool) {
	if b {
		w.uint(1)
	} else {
		w.uint(0)
	}
}

func (w *hashWriter) block(b Block) {
	w.str(string(b.Kind))
	w.segments(b.Text)
	w.flag(b.Checked)
	w.str(b.Language)
	w.str(b.Icon)
	w.str(b.Source)
	w.segments(b.Caption)

	w.uint(uint64(len(b.Children)))
	for _, c := range b.Children {
		w.block(c)
	}
}

func (w *hashWriter) segments(segs []TextSegment) {
	w.uint(uint64(len(segs)))
	for _, s := range segs {
		w.str(s.Content)
		w.str(s.Link)
		w.flag(s.Annotations.Bold)
		w.flag(s.Annotations.Italic)
		w.flag(s.Annotations.Strikethrough)
		w.flag(s.Annotations.Code)
	}
}
