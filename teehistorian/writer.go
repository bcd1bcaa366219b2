package teehistorian

import "github.com/ddnet-go/twnet/varint"

// Writer accumulates a teehistorian item stream behind a JSON header.
type Writer struct {
	header Header
	buf    []byte
}

// NewWriter starts a new teehistorian stream using the given header.
func NewWriter(header Header) *Writer {
	return &Writer{header: header}
}

func (w *Writer) append(fn func(p *varint.Packer) error) {
	scratch := make([]byte, 0, 512)
	p := varint.NewPacker(scratch)

	if err := fn(p); err != nil {
		// Every caller-provided fn below only ever writes bounded tag/int
		// fields plus caller data into a scratch buffer sized generously
		// for that purpose; a capacity error here means the scratch size
		// assumption no longer holds and needs revisiting.
		panic(err)
	}

	w.buf = append(w.buf, p.Bytes()...)
}

// WritePlayerDiff appends a PlayerDiff item.
func (w *Writer) WritePlayerDiff(d PlayerDiff) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(d.Cid); err != nil {
			return err
		}
		if err := p.AddInt32(d.Dx); err != nil {
			return err
		}

		return p.AddInt32(d.Dy)
	})
}

// WriteFinish appends the terminal Finish item.
func (w *Writer) WriteFinish() {
	w.append(func(p *varint.Packer) error { return p.AddInt32(tagFinish) })
}

// WriteTickSkip appends a TickSkip item.
func (w *Writer) WriteTickSkip(dt int32) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(tagTickSkip); err != nil {
			return err
		}

		return p.AddInt32(dt)
	})
}

// WritePlayerNew appends a PlayerNew item.
func (w *Writer) WritePlayerNew(i PlayerNewItem) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(tagPlayerNew); err != nil {
			return err
		}
		if err := p.AddInt32(i.Cid); err != nil {
			return err
		}
		if err := p.AddInt32(i.X); err != nil {
			return err
		}

		return p.AddInt32(i.Y)
	})
}

// WritePlayerOld appends a PlayerOld item.
func (w *Writer) WritePlayerOld(i PlayerOldItem) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(tagPlayerOld); err != nil {
			return err
		}

		return p.AddInt32(i.Cid)
	})
}

// WriteInputDiff appends an InputDiff item.
func (w *Writer) WriteInputDiff(i InputDiff) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(tagInputDiff); err != nil {
			return err
		}
		if err := p.AddInt32(i.Cid); err != nil {
			return err
		}

		for _, v := range i.Diff {
			if err := p.AddInt32(v); err != nil {
				return err
			}
		}

		return nil
	})
}

// WriteInputNew appends an InputNew item.
func (w *Writer) WriteInputNew(i InputNewItem) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(tagInputNew); err != nil {
			return err
		}
		if err := p.AddInt32(i.Cid); err != nil {
			return err
		}

		for _, v := range i.New {
			if err := p.AddInt32(v); err != nil {
				return err
			}
		}

		return nil
	})
}

// WriteMessage appends a Message item. Its scratch buffer is sized to the
// payload, unlike the fixed-field items above.
func (w *Writer) WriteMessage(i MessageItem) {
	scratch := make([]byte, 0, len(i.Msg)+16)
	p := varint.NewPacker(scratch)

	if err := p.AddInt32(tagMessage); err != nil {
		panic(err)
	}
	if err := p.AddInt32(i.Cid); err != nil {
		panic(err)
	}
	if err := p.AddData(i.Msg); err != nil {
		panic(err)
	}

	w.buf = append(w.buf, p.Bytes()...)
}

// WriteJoin appends a Join item.
func (w *Writer) WriteJoin(i JoinItem) {
	w.append(func(p *varint.Packer) error {
		if err := p.AddInt32(tagJoin); err != nil {
			return err
		}

		return p.AddInt32(i.Cid)
	})
}

// WriteDrop appends a Drop item.
func (w *Writer) WriteDrop(i DropItem) {
	scratch := make([]byte, 0, len(i.Reason)+16)
	p := varint.NewPacker(scratch)

	if err := p.AddInt32(tagDrop); err != nil {
		panic(err)
	}
	if err := p.AddInt32(i.Cid); err != nil {
		panic(err)
	}
	if err := p.AddString(string(i.Reason)); err != nil {
		panic(err)
	}

	w.buf = append(w.buf, p.Bytes()...)
}

// WriteExtra appends an ExtraItem.
func (w *Writer) WriteExtra(i ExtraItem) {
	scratch := make([]byte, 0, len(i.Data)+32)
	p := varint.NewPacker(scratch)

	if err := p.AddInt32(tagExtra); err != nil {
		panic(err)
	}
	if err := p.AddRaw(i.UUID[:]); err != nil {
		panic(err)
	}
	if err := p.AddData(i.Data); err != nil {
		panic(err)
	}

	w.buf = append(w.buf, p.Bytes()...)
}

// Bytes serializes the header followed by the accumulated item stream.
func (w *Writer) Bytes() ([]byte, error) {
	out, err := WriteHeader(w.header)
	if err != nil {
		return nil, err
	}

	return append(out, w.buf...), nil
}
