package vortex

// Field is a dense N² scalar array addressed through Grid.Index.
type Field []float64

// NewField allocates a zeroed field for g.
func NewField(g Grid) Field {
	return make(Field, g.Cells())
}

// Fill sets every cell to v.
func (f Field) Fill(v float64) {
	for i := range f {
		f[i] = v
	}
}

// Clone returns an independent copy.
func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// Buffer is a ping-pong pair. Passes read Front and write Back, then Swap so
// the freshly written data becomes Front. Front and Back never alias.
type Buffer struct {
	Front Field
	Back  Field
}

// NewBuffer allocates both halves for g.
func NewBuffer(g Grid) Buffer {
	return Buffer{Front: NewField(g), Back: NewField(g)}
}

// Swap exchanges Front and Back.
func (b *Buffer) Swap() {
	b.Front, b.Back = b.Back, b.Front
}

// Clear zeroes both halves.
func (b *Buffer) Clear() {
	b.Front.Fill(0)
	b.Back.Fill(0)
}
