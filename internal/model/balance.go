package model

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/balancelab/internal/property"
)

// BalanceModel composes the plank, the fulcrum, the support-column
// state, and the masses present in the simulation area. It forwards the
// per-frame Step to each part and tracks which masses are currently
// user-controlled through property subscriptions, not direct mutation.
//
// Single-threaded and frame-driven: the host calls Step(dt) once per
// rendered frame.
type BalanceModel struct {
	Plank       *Plank
	Fulcrum     Fulcrum
	ColumnState *property.Property[ColumnState]

	masses         []*Mass
	userControlled map[*Mass]bool
	subs           map[*Mass]*property.Subscription
}

func New() *BalanceModel {
	columnState := property.New(DoubleColumns)
	fulcrum := NewFulcrum(mgl64.Vec2{0, 0})

	return &BalanceModel{
		Plank:          NewPlank(fulcrum.Position, columnState),
		Fulcrum:        fulcrum,
		ColumnState:    columnState,
		userControlled: make(map[*Mass]bool),
		subs:           make(map[*Mass]*property.Subscription),
	}
}

// Step advances the plank first, so resting masses get their surface
// positions, then advances each mass's in-flight animation.
func (b *BalanceModel) Step(dt float64) {
	b.Plank.Step(dt)
	for _, m := range b.masses {
		m.Step(dt)
	}
}

// AddMass registers a mass with the simulation area and subscribes to
// its user-controlled flag. Adding does not place it on the plank.
func (b *BalanceModel) AddMass(m *Mass) {
	b.masses = append(b.masses, m)
	b.subs[m] = m.UserControlled.Link(func(controlled bool) {
		if controlled {
			b.userControlled[m] = true
		} else {
			delete(b.userControlled, m)
		}
	})
}

// RemoveMass detaches the mass from the plank if needed and drops the
// subscription taken in AddMass.
func (b *BalanceModel) RemoveMass(m *Mass) {
	if sub, ok := b.subs[m]; ok {
		sub.Unlink()
		delete(b.subs, m)
	}
	delete(b.userControlled, m)

	if m.OnPlank {
		b.Plank.RemoveMassFromSurface(m)
	}

	for i, existing := range b.masses {
		if existing == m {
			b.masses = append(b.masses[:i], b.masses[i+1:]...)
			return
		}
	}
}

// UserControlledMasses reports the masses currently being dragged.
func (b *BalanceModel) UserControlledMasses() []*Mass {
	out := make([]*Mass, 0, len(b.userControlled))
	for _, m := range b.masses {
		if b.userControlled[m] {
			out = append(out, m)
		}
	}
	return out
}

// Masses returns every mass in the simulation area.
func (b *BalanceModel) Masses() []*Mass {
	out := make([]*Mass, len(b.masses))
	copy(out, b.masses)
	return out
}

// Reset removes every mass and restores the initial column state.
func (b *BalanceModel) Reset() {
	for _, m := range b.masses {
		if sub, ok := b.subs[m]; ok {
			sub.Unlink()
		}
	}
	b.masses = nil
	b.subs = make(map[*Mass]*property.Subscription)
	b.userControlled = make(map[*Mass]bool)
	b.Plank.Reset()
	b.ColumnState.Set(DoubleColumns)
}
