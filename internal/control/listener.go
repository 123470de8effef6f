package control

import "github.com/frudas24/tuiomouse/internal/tuio"

var _ tuio.Listener = (*Mapper)(nil)

// AddCursor forwards a new TUIO cursor as a contact appearance.
func (m *Mapper) AddCursor(c tuio.Cursor) {
	m.logger.Trace().Int("cursor", c.CursorID).Int64("session", c.SessionID).Msg("add tuio cursor")
	m.ContactAppear(c.SessionID, float64(c.X), float64(c.Y))
}

// UpdateCursor forwards cursor motion.
func (m *Mapper) UpdateCursor(c tuio.Cursor) {
	m.logger.Trace().Int("cursor", c.CursorID).Int64("session", c.SessionID).Msg("update tuio cursor")
	m.ContactUpdate(c.SessionID, float64(c.X), float64(c.Y))
}

// RemoveCursor forwards cursor removal.
func (m *Mapper) RemoveCursor(c tuio.Cursor) {
	m.logger.Trace().Int("cursor", c.CursorID).Int64("session", c.SessionID).Msg("remove tuio cursor")
	m.ContactRemove(c.SessionID)
}

// AddObject only logs; objects do not drive the pointer.
func (m *Mapper) AddObject(o tuio.Object) {
	m.logger.Debug().Int("symbol", o.SymbolID).Msg("add tuio object")
}

// UpdateObject only logs.
func (m *Mapper) UpdateObject(o tuio.Object) {
	m.logger.Debug().Int("symbol", o.SymbolID).Msg("update tuio object")
}

// RemoveObject only logs.
func (m *Mapper) RemoveObject(o tuio.Object) {
	m.logger.Debug().Int("symbol", o.SymbolID).Msg("remove tuio object")
}

// AddBlob only logs; blobs do not drive the pointer.
func (m *Mapper) AddBlob(b tuio.Blob) {
	m.logger.Debug().Int("blob", b.BlobID).Msg("add tuio blob")
}

// UpdateBlob only logs.
func (m *Mapper) UpdateBlob(b tuio.Blob) {
	m.logger.Debug().Int("blob", b.BlobID).Msg("update tuio blob")
}

// RemoveBlob only logs.
func (m *Mapper) RemoveBlob(b tuio.Blob) {
	m.logger.Info().Int("blob", b.BlobID).Msg("remove tuio blob")
}

// Refresh records the end of a protocol frame; it emits nothing.
func (m *Mapper) Refresh(f tuio.Frame) {
	m.logger.Debug().Int64("frame", f.ID).Dur("time", f.Time).Msg("refresh")
}
