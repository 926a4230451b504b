// Package sim drives a BalanceModel through fixed-dt frames and records
// the tilt trajectory. The model itself stays single-threaded; the
// runner is the host-side per-frame callback the model expects.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/balancelab/internal/model"
)

type Runner struct {
	model     *model.BalanceModel
	metrics   []Metric
	observers []Observer
}

func New(bm *model.BalanceModel) *Runner {
	return &Runner{
		model:     bm,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) Model() *model.BalanceModel { return r.model }

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) snapshot(t float64) Frame {
	plank := r.model.Plank
	return Frame{
		Time:     t,
		Tilt:     plank.TiltAngle.Get(),
		Omega:    plank.AngularVelocity(),
		Torque:   plank.NetTorque(),
		Balanced: plank.IsBalanced(),
	}
}

// Run steps the model for cfg.Duration at fixed cfg.Dt, returning the
// recorded trajectory. A cancelled context returns the partial result
// together with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Tilts:   make([]float64, 0, steps+1),
		Omegas:  make([]float64, 0, steps+1),
		Torques: make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.record(r.snapshot(t))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finishMetrics(result)
			return result, ctx.Err()
		default:
		}

		r.model.Step(cfg.Dt)
		t += cfg.Dt

		frame := r.snapshot(t)

		if cfg.ValidateState && !frame.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range r.metrics {
			m.Observe(frame)
		}
		for _, obs := range r.observers {
			obs.OnFrame(frame)
		}

		result.record(frame)
		result.StepsTaken++
	}

	r.finishMetrics(result)
	return result, nil
}

// RunWithCallback streams frames to fn instead of accumulating them;
// returning false from fn stops the run early.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, fn func(Frame) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.model.Step(cfg.Dt)
		t += cfg.Dt

		frame := r.snapshot(t)
		if cfg.ValidateState && !frame.IsValid() {
			return SimError{Time: t, Message: "invalid state (NaN/Inf)"}
		}

		if !fn(frame) {
			return nil
		}
	}

	return nil
}

func (r *Runner) finishMetrics(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (res *Result) record(f Frame) {
	res.Times = append(res.Times, f.Time)
	res.Tilts = append(res.Tilts, f.Tilt)
	res.Omegas = append(res.Omegas, f.Omega)
	res.Torques = append(res.Torques, f.Torque)
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
