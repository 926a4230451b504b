// Package challenge generates balance puzzles: fixed masses on one side
// of the plank and a movable mass whose correct placement levels it.
//
// All generation state, including the set of already-issued challenges,
// is owned by the Generator instance. Nothing lives at package level,
// so independent game sessions never share history.
package challenge

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/balancelab/internal/model"
)

// Placement is a mass value at a signed distance from the plank center.
type Placement struct {
	Value    float64
	Distance float64
}

// Challenge asks the player to balance the fixed placements using the
// movable mass. Solution is the signed distance that levels the plank.
type Challenge struct {
	Fixed    []Placement
	Movable  float64
	Solution float64
}

func (c Challenge) key() string {
	return fmt.Sprintf("%v|%.2f", c.Fixed, c.Movable)
}

// IsSolved checks a proposed distance against the torque rule.
func (c Challenge) IsSolved(distance float64) bool {
	sum := c.Movable * distance
	for _, p := range c.Fixed {
		sum += p.Value * p.Distance
	}
	return math.Abs(sum) < 1e-9
}

type Generator struct {
	rnd  *rand.Rand
	used map[string]bool
}

const maxAttempts = 200

// Candidate mass values, in kilograms.
var massValues = []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd:  rand.New(rand.NewSource(seed)),
		used: make(map[string]bool),
	}
}

// Next produces a challenge not issued before by this generator. The
// solution always lands exactly on a snap position within the valid
// range. Returns an error when the unused space is exhausted.
func (g *Generator) Next() (Challenge, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c, ok := g.propose()
		if !ok {
			continue
		}
		if g.used[c.key()] {
			continue
		}
		g.used[c.key()] = true
		return c, nil
	}
	return Challenge{}, fmt.Errorf("no unused solvable challenge found after %d attempts", maxAttempts)
}

func (g *Generator) propose() (Challenge, bool) {
	fixed := Placement{
		Value:    massValues[g.rnd.Intn(len(massValues))],
		Distance: -g.snapDistance(),
	}
	movable := massValues[g.rnd.Intn(len(massValues))]

	// solution * movable must cancel the fixed torque.
	solution := -fixed.Value * fixed.Distance / movable
	if !onSnap(solution) || math.Abs(solution) > model.MaxValidMassDistance || solution == 0 {
		return Challenge{}, false
	}

	return Challenge{
		Fixed:    []Placement{fixed},
		Movable:  movable,
		Solution: solution,
	}, true
}

// snapDistance picks a random positive snap position.
func (g *Generator) snapDistance() float64 {
	slots := int(math.Round(model.MaxValidMassDistance / model.SnapSpacing))
	return float64(1+g.rnd.Intn(slots)) * model.SnapSpacing
}

func onSnap(distance float64) bool {
	ratio := distance / model.SnapSpacing
	return math.Abs(ratio-math.Round(ratio)) < 1e-9
}
