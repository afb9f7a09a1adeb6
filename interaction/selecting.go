package interaction

import (
	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/notes"
)

// selecting drags a marquee. The selection is only replaced on release;
// until then matches live in store.Highlighted.
type selecting struct {
	c        *Controller
	prior    []notes.Note
	additive bool
}

func (s *selecting) Mode() Mode { return ModeSelecting }

func (s *selecting) OnEnter(ev Pointer) {
	st := s.c.store
	s.prior = st.Selected()
	s.additive = ev.Mods.Additive()

	gx, gy := s.c.gridLocal(ev)
	if p := st.Press; p != nil {
		gx, gy = p.GX, p.GY
	}
	st.Marquee = &grid.Box{StartX: gx, StartY: gy, CurrentX: gx, CurrentY: gy}
	st.Highlighted = nil
}

func (s *selecting) OnExit() {
	st := s.c.store
	st.Marquee = nil
	st.Highlighted = nil
	st.Press = nil
	s.prior = nil
}

func (s *selecting) OnMouseDown(ev Pointer) Mode { return ModeSelecting }

func (s *selecting) OnMouseMove(ev Pointer) Mode {
	s.update(ev)
	return ModeSelecting
}

func (s *selecting) OnMouseUp(ev Pointer) Mode {
	s.update(ev)
	st := s.c.store

	sel := st.Highlighted
	if s.additive {
		sel = s.c.manager.MergeSelections(s.prior, sel)
	}
	debug.Log("mode", "marquee selected %d notes", len(sel))
	if len(sel) == 0 {
		st.ClearSelection()
		return ModeNoteTool
	}
	st.SetSelection(sel)
	return ModeSelectedIdle
}

// OnMouseLeave abandons the marquee; the prior selection was never touched
func (s *selecting) OnMouseLeave(ev Pointer) Mode {
	return ModeNoteTool
}

func (s *selecting) update(ev Pointer) {
	st := s.c.store
	if st.Marquee == nil {
		return
	}
	st.Marquee.CurrentX, st.Marquee.CurrentY = s.c.gridLocal(ev)
	st.Highlighted = s.c.cfg.NotesInMarquee(s.c.manager.All(), *st.Marquee, s.c.opts.Snap)
}
