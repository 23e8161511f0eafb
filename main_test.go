package main

import (
	"bytes"
	"strings"
	"testing"
)

const goodScript = `
(defshape "base" (line (vec3 0 0 0) (vec3 10 0 0)))
(defshape "hole" (circle :center (vec3 5 5 0) :radius 2))
`

func TestRunScriptSuccess(t *testing.T) {
	report, err := runScript(goodScript, 8)
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if report.Failed() {
		t.Fatalf("run failed: eval=%v validation=%v", report.EvalErrors, report.Errors)
	}
	if report.Sketch.Len() != 2 {
		t.Errorf("sketch has %d shapes, want 2", report.Sketch.Len())
	}
	if len(report.Polylines) != 2 {
		t.Fatalf("got %d polylines, want 2", len(report.Polylines))
	}
	if report.Polylines[0].Name != "base" || report.Polylines[1].Name != "hole" {
		t.Errorf("polyline names = %q, %q", report.Polylines[0].Name, report.Polylines[1].Name)
	}
	if !report.Polylines[1].Closed {
		t.Error("circle polyline should be closed")
	}
}

func TestRunScriptEvalError(t *testing.T) {
	report, err := runScript(`(circle :radius -1)`, 8)
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected run to fail")
	}
	if len(report.EvalErrors) == 0 {
		t.Error("expected eval errors")
	}
	if len(report.Polylines) != 0 {
		t.Error("failed run should not produce polylines")
	}
}

func TestRunScriptValidationError(t *testing.T) {
	// Same line registered twice under different names.
	src := `
(defshape "a" (line (vec3 0 0 0) (vec3 1 0 0)))
(defshape "b" (line (vec3 0 0 0) (vec3 1 0 0)))
`
	report, err := runScript(src, 8)
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected duplicate edges to fail validation")
	}
	if len(report.Errors) == 0 {
		t.Error("expected validation errors")
	}
}

func TestRunScriptEmpty(t *testing.T) {
	report, err := runScript("", 8)
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if report.Failed() {
		t.Fatal("empty script should succeed")
	}
	if report.Sketch.Len() != 0 {
		t.Errorf("sketch has %d shapes, want 0", report.Sketch.Len())
	}
}

func TestWriteJSON(t *testing.T) {
	report, err := runScript(goodScript, 4)
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, report.Polylines); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"points"`) {
		t.Errorf("JSON missing points field: %s", out)
	}
	if !strings.Contains(out, `"base"`) {
		t.Errorf("JSON missing shape name: %s", out)
	}
}
