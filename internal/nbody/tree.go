package nbody

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/octree"
)

const tracerName = "github.com/san-kum/nbody/internal/nbody"

// BuildTree rebuilds the octree around ps. The root box is recomputed every
// call, so the tree never holds stale particles.
func (s *System) BuildTree(ctx context.Context, ps []body.Particle) (*octree.Tree, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "nbody.System.BuildTree",
		trace.WithAttributes(attribute.Int("particles", len(ps))),
	)
	defer span.End()

	g, err := s.treeG()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unsupported law")
		return nil, err
	}
	cfg := s.treeCfg
	cfg.G = g

	if s.tree == nil {
		box := octree.BoundsOf(ps, boundsPad)
		s.tree = octree.New(box.Max, box.Min, cfg)
	} else {
		s.tree.SetConfig(cfg)
	}
	if err := s.tree.Rebuild(ps, boundsPad); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tree build failed")
		return nil, err
	}

	if span.IsRecording() {
		st := s.tree.Stats()
		span.SetAttributes(
			attribute.Int("nodes", st.Nodes),
			attribute.Int("max_depth", st.MaxDepth),
		)
	}
	return s.tree, nil
}

// TreeAccelerations returns the Barnes–Hut acceleration of every particle
// at its current position.
func (s *System) TreeAccelerations(ctx context.Context) ([]body.Acceleration, error) {
	return s.treeAccelerations(ctx, s.particles)
}

func (s *System) treeAccelerations(ctx context.Context, ps []body.Particle) ([]body.Acceleration, error) {
	t, err := s.BuildTree(ctx, ps)
	if err != nil {
		return nil, err
	}
	return t.Accelerations(ctx, ps, s.workers)
}
