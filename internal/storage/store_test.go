package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

func sampleFrames() []Frame {
	return []Frame{
		{Step: 0, Time: 0, Particles: []body.Particle{
			{ID: 0, Pos: r3.Vec{X: -0.5}, Vel: r3.Vec{Y: -0.7071067811865476}},
			{ID: 1, Pos: r3.Vec{X: 0.5}, Vel: r3.Vec{Y: 0.7071067811865476}},
		}},
		{Step: 10, Time: 0.01, Particles: []body.Particle{
			{ID: 0, Pos: r3.Vec{X: -0.49997, Y: -0.00707, Z: 1e-300}, Vel: r3.Vec{X: 0.01, Y: -0.7071}},
			{ID: 1, Pos: r3.Vec{X: 0.49997, Y: 0.00707}, Vel: r3.Vec{X: -0.01, Y: 0.7071}},
		}},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Name:      "two-body",
		Seed:      42,
		Strategy:  "pair",
		Method:    "rk4",
		Law:       "gravity",
		Dt:        1e-3,
		Steps:     10,
		Particles: 2,
		Metrics:   map[string]float64{"energy_drift": 1.5e-9},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleMeta(), sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "two-body_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Seed != 42 || meta.Frames != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["energy_drift"] != 1.5e-9 {
		t.Errorf("expected drift 1.5e-9, got %g", meta.Metrics["energy_drift"])
	}

	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if diff := cmp.Diff(sampleFrames(), frames); diff != "" {
		t.Errorf("trajectory mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected no runs, got %v (%v)", runs, err)
	}

	for _, name := range []string{"a", "b"} {
		meta := sampleMeta()
		meta.Name = name
		if _, err := st.Save(meta, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "a" || runs[1].Name != "b" {
		t.Errorf("runs out of order: %s, %s", runs[0].Name, runs[1].Name)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v (%v)", runs, err)
	}
}

func TestTrajectoryFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrajectory(&buf, sampleFrames()[:1]); err != nil {
		t.Fatal(err)
	}
	want := "step,time,id,x,y,z,vx,vy,vz\n" +
		"0,0,0,-0.5,0,0,0,-0.7071067811865476,0\n" +
		"0,0,1,0.5,0,0,0,0.7071067811865476,0\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestReadTrajectoryMalformed(t *testing.T) {
	tests := map[string]string{
		"short row":  "step,time,id,x,y,z,vx,vy,vz\n0,0,0,1\n",
		"not number": "step,time,id,x,y,z,vx,vy,vz\n0,0,0,a,0,0,0,0,0\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTrajectory(strings.NewReader(in))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}

	frames, err := ReadTrajectory(strings.NewReader("step,time,id,x,y,z,vx,vy,vz\n"))
	if err != nil || len(frames) != 0 {
		t.Errorf("header only: %v, %v", frames, err)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	meta := sampleMeta()
	meta.ID = "two-body_1"
	if err := ExportJSON(path, meta, sampleFrames()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, sampleFrames()); err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Run.ID != "two-body_1" || len(got.Frames) != 2 {
		t.Fatalf("unexpected export %+v", got.Run)
	}
	if p := got.Frames[1].Particles[1]; p.ID != 1 || p.Pos != [3]float64{0.49997, 0.00707, 0} {
		t.Errorf("unexpected particle %+v", p)
	}
}

func TestSQLiteSink(t *testing.T) {
	ctx := context.Background()
	sink, err := OpenSQLite(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sink.Close()

	if err := sink.SaveRun(ctx, sampleMeta(), nil); !errors.Is(err, ErrNoRunID) {
		t.Errorf("expected ErrNoRunID, got %v", err)
	}

	meta := sampleMeta()
	meta.ID = "two-body_1"
	if err := sink.SaveRun(ctx, meta, sampleFrames()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := sink.SaveRun(ctx, meta, sampleFrames()); err == nil {
		t.Error("expected duplicate run id to fail")
	}

	runs, err := sink.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != "two-body_1" || runs[0].Frames != 2 || runs[0].Method != "rk4" {
		t.Errorf("unexpected runs %+v", runs)
	}

	frames, err := sink.Frames(ctx, "two-body_1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleFrames(), frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}

	none, err := sink.Frames(ctx, "missing")
	if err != nil || len(none) != 0 {
		t.Errorf("expected no frames, got %v (%v)", none, err)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sampleFrames(), 200, 100); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<path "); n != 2 {
		t.Errorf("paths = %d, want 2", n)
	}
	if n := strings.Count(out, "<circle "); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	// x spans [-0.5, 0.5] around the center of a 200x100 canvas: scale is
	// 100/1.2, so the first point of particle 0 sits at 100 - 0.5*100/1.2.
	if !strings.Contains(out, `d="M58.3,50.0`) {
		t.Errorf("unexpected first point:\n%s", out)
	}

	if err := WriteSVG(&buf, nil, 200, 100); !errors.Is(err, ErrMalformed) {
		t.Errorf("empty frames: err = %v, want ErrMalformed", err)
	}
}
