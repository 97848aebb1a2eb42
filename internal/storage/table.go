package storage

import (
	"fmt"
	"log/slog"
)

// RowID addresses one row by page position and slot.
type RowID struct {
	Page int
	Slot int
}

// Table is the page list backing one table. The whole list lives in memory
// and Flush rewrites the backend from it every time.
type Table struct {
	backend Backend
	pages   []*Page
	log     *slog.Logger
}

// OpenTable loads the pages stored in backend. A trailing partial page is
// ignored. A backend with nothing stored yields a table with no pages.
func OpenTable(backend Backend, log *slog.Logger) (*Table, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	data, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("storage: load table: %w", err)
	}

	t := &Table{backend: backend, log: log}
	n := len(data) / PageSize
	if rem := len(data) % PageSize; rem != 0 {
		log.Warn("ignoring trailing partial page", "bytes", rem, "pages", n)
	}
	t.pages = make([]*Page, 0, n)
	for i := 0; i < n; i++ {
		p, err := PageFromBytes(uint32(i), data[i*PageSize:(i+1)*PageSize])
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		t.pages = append(t.pages, p)
	}
	return t, nil
}

// CreateTable starts a table with one empty page and writes it out,
// replacing anything the backend held before.
func CreateTable(backend Backend, log *slog.Logger) (*Table, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	t := &Table{backend: backend, log: log}
	if _, err := t.Allocate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) PageCount() int { return len(t.pages) }

// Page returns the page at position i.
func (t *Table) Page(i int) *Page { return t.pages[i] }

// Allocate appends an empty page and flushes.
func (t *Table) Allocate() (*Page, error) {
	p := NewPage(uint32(len(t.pages)))
	t.pages = append(t.pages, p)
	if err := t.Flush(); err != nil {
		return nil, err
	}
	t.log.Debug("allocated page", "page", p.ID())
	return p, nil
}

// Flush rewrites the backend from all pages, in order.
func (t *Table) Flush() error {
	buf := make([]byte, 0, len(t.pages)*PageSize)
	for _, p := range t.pages {
		buf = append(buf, p.Bytes()...)
	}
	if err := t.backend.Store(buf); err != nil {
		return fmt.Errorf("storage: flush: %w", err)
	}
	return nil
}

// Append inserts row into the last page, allocating a new page when the
// last one is full. It does not flush.
func (t *Table) Append(row []byte) (RowID, error) {
	if len(row) > MaxRowSize {
		return RowID{}, &EncodingError{Msg: fmt.Sprintf("row of %d bytes exceeds page capacity %d", len(row), MaxRowSize)}
	}
	if len(t.pages) > 0 {
		last := len(t.pages) - 1
		if slot, ok := t.pages[last].Insert(row); ok {
			return RowID{Page: last, Slot: slot}, nil
		}
	}

	p, err := t.Allocate()
	if err != nil {
		return RowID{}, err
	}
	slot, ok := p.Insert(row)
	if !ok {
		return RowID{}, fmt.Errorf("storage: row of %d bytes does not fit an empty page", len(row))
	}
	return RowID{Page: len(t.pages) - 1, Slot: slot}, nil
}

// Insert appends row and flushes. If the flush fails the row is taken out
// again; a page allocated on the way stays, empty.
func (t *Table) Insert(row []byte) (RowID, error) {
	last := len(t.pages) - 1
	var saved *Page
	if last >= 0 {
		saved = t.pages[last].clone()
	}

	id, err := t.Append(row)
	if err != nil {
		return RowID{}, err
	}
	if err := t.Flush(); err != nil {
		if id.Page == last {
			t.pages[last] = saved
		} else {
			t.pages[id.Page] = NewPage(uint32(id.Page))
		}
		return RowID{}, err
	}
	return id, nil
}

// Scan calls fn for every present slot of every page, in order. It stops at
// the first error fn returns.
func (t *Table) Scan(fn func(id RowID, data []byte) error) error {
	for pi, p := range t.pages {
		for slot := 0; slot < p.RowCount(); slot++ {
			data, ok := p.Get(slot)
			if !ok {
				continue
			}
			if err := fn(RowID{Page: pi, Slot: slot}, data); err != nil {
				return err
			}
		}
	}
	return nil
}

// Replace rebuilds the table from rows and flushes. The table always keeps
// at least one page. If the flush fails the previous pages are restored.
func (t *Table) Replace(rows [][]byte) error {
	pages := []*Page{NewPage(0)}
	for _, row := range rows {
		if len(row) > MaxRowSize {
			return &EncodingError{Msg: fmt.Sprintf("row of %d bytes exceeds page capacity %d", len(row), MaxRowSize)}
		}
		if _, ok := pages[len(pages)-1].Insert(row); ok {
			continue
		}
		p := NewPage(uint32(len(pages)))
		p.Insert(row)
		pages = append(pages, p)
	}

	old := t.pages
	t.pages = pages
	if err := t.Flush(); err != nil {
		t.pages = old
		return err
	}
	t.log.Debug("rewrote table", "rows", len(rows), "pages", len(pages))
	return nil
}
