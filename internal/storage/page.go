package storage

import (
	"encoding/binary"
	"fmt"
)

const (
	PageSize       = 4096
	PageHeaderSize = 16
	SlotSize       = 4

	// MaxRowSize is the largest row an empty page can take.
	MaxRowSize = PageSize - PageHeaderSize - SlotSize
)

// Page header layout (on disk):
//
// offset  size  field
// 0       4     pageID (uint32)
// 4       2     rowCount (uint16)
// 6       2     freeStart (uint16) - end of the slot directory
// 8       2     freeEnd (uint16) - start of the row area
// 10      6     reserved
//
// The slot directory starts at 16 and grows up, 4 bytes per slot:
//
//	[offset uint16][length uint16]
//
// Row bytes grow down from the end of the page, so slot 0 is the first row
// inserted but sits last in the buffer.
//
// Invariants:
//
//	freeStart == 16 + rowCount*4
//	freeStart <= freeEnd <= PageSize
type pageHeader struct {
	pageID    uint32
	rowCount  uint16
	freeStart uint16
	freeEnd   uint16
}

func (h pageHeader) encode(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.pageID)
	binary.LittleEndian.PutUint16(buf[4:6], h.rowCount)
	binary.LittleEndian.PutUint16(buf[6:8], h.freeStart)
	binary.LittleEndian.PutUint16(buf[8:10], h.freeEnd)
}

func decodePageHeader(buf []byte) pageHeader {
	return pageHeader{
		pageID:    binary.LittleEndian.Uint32(buf[0:4]),
		rowCount:  binary.LittleEndian.Uint16(buf[4:6]),
		freeStart: binary.LittleEndian.Uint16(buf[6:8]),
		freeEnd:   binary.LittleEndian.Uint16(buf[8:10]),
	}
}

// Page is a 4KB slotted page in memory.
type Page struct {
	header pageHeader
	data   []byte
}

// NewPage returns an empty page with the given id.
func NewPage(id uint32) *Page {
	p := &Page{
		header: pageHeader{
			pageID:    id,
			freeStart: PageHeaderSize,
			freeEnd:   PageSize,
		},
		data: make([]byte, PageSize),
	}
	p.applyHeader()
	return p
}

// PageFromBytes wraps a copy of buf as the page at position id. Pages are
// identified by position, so id wins over whatever the header says.
func PageFromBytes(id uint32, buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, fmt.Errorf("page %d: size %d, want %d", id, len(buf), PageSize)
	}
	h := decodePageHeader(buf)
	if int(h.freeStart) != PageHeaderSize+int(h.rowCount)*SlotSize ||
		h.freeStart > h.freeEnd || int(h.freeEnd) > PageSize {
		return nil, fmt.Errorf("page %d: corrupt header (rows=%d freeStart=%d freeEnd=%d)",
			id, h.rowCount, h.freeStart, h.freeEnd)
	}
	h.pageID = id

	p := &Page{header: h, data: make([]byte, PageSize)}
	copy(p.data, buf)
	p.applyHeader()
	return p, nil
}

func (p *Page) clone() *Page {
	c := &Page{header: p.header, data: make([]byte, len(p.data))}
	copy(c.data, p.data)
	return c
}

// applyHeader writes the header fields back into the page bytes.
func (p *Page) applyHeader() {
	p.header.encode(p.data[:PageHeaderSize])
}

func (p *Page) ID() uint32        { return p.header.pageID }
func (p *Page) RowCount() int     { return int(p.header.rowCount) }
func (p *Page) FreeStart() uint16 { return p.header.freeStart }
func (p *Page) FreeEnd() uint16   { return p.header.freeEnd }

// FreeSpace is the largest row Insert would still accept.
func (p *Page) FreeSpace() int {
	free := int(p.header.freeEnd) - int(p.header.freeStart) - SlotSize
	if free < 0 {
		return 0
	}
	return free
}

// Insert places row in the page and returns its slot index. It reports false
// and leaves the page untouched when the row does not fit.
func (p *Page) Insert(row []byte) (int, bool) {
	if int(p.header.freeEnd)-int(p.header.freeStart) < SlotSize+len(row) {
		return 0, false
	}

	p.header.freeEnd -= uint16(len(row))
	copy(p.data[p.header.freeEnd:], row)

	slot := int(p.header.rowCount)
	pos := p.header.freeStart
	binary.LittleEndian.PutUint16(p.data[pos:pos+2], p.header.freeEnd)
	binary.LittleEndian.PutUint16(p.data[pos+2:pos+4], uint16(len(row)))

	p.header.freeStart += SlotSize
	p.header.rowCount++
	p.applyHeader()
	return slot, true
}

// Get returns a copy of the row in slot. Empty slots and slots pointing
// outside the page are reported absent.
func (p *Page) Get(slot int) ([]byte, bool) {
	if slot < 0 || slot >= int(p.header.rowCount) {
		return nil, false
	}
	pos := PageHeaderSize + slot*SlotSize
	off := int(binary.LittleEndian.Uint16(p.data[pos : pos+2]))
	length := int(binary.LittleEndian.Uint16(p.data[pos+2 : pos+4]))
	if length == 0 || off < int(p.header.freeStart) || off+length > PageSize {
		return nil, false
	}
	out := make([]byte, length)
	copy(out, p.data[off:off+length])
	return out, true
}

// Bytes returns the raw page, header included. The caller must not modify it.
func (p *Page) Bytes() []byte {
	return p.data
}
