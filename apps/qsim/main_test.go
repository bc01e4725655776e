//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/markkurossi/qsim/compiler/utils"
)

func testParams(out *bytes.Buffer) *utils.Params {
	params := utils.NewParams()
	params.Seed = []byte("qsim")
	params.Input = strings.NewReader("")
	params.Output = out
	return params
}

func TestExamples(t *testing.T) {
	files, err := filepath.Glob("examples/*.q")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatalf("no examples")
	}
	for _, file := range files {
		var out, log bytes.Buffer
		err := run(testParams(&out), utils.NewLogger(&log), file)
		if err != nil {
			t.Errorf("%s: %v\n%s", file, err, log.String())
		}
	}
}

func TestDeutsch(t *testing.T) {
	var out, log bytes.Buffer
	err := run(testParams(&out), utils.NewLogger(&log),
		"examples/deutsch.q")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "[1]") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestDiagnostics(t *testing.T) {
	var out, log bytes.Buffer
	params := testParams(&out)
	params.Diagnostics = true

	err := run(params, utils.NewLogger(&log), "examples/deutsch.q")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, s := range []string{"function f/1:", "var a", "Uf 0 1", "M 0"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output does not contain %q:\n%s", s, out.String())
		}
	}
}

func TestMissingFile(t *testing.T) {
	var out, log bytes.Buffer
	err := run(testParams(&out), utils.NewLogger(&log), "examples/none.q")
	if err == nil {
		t.Fatalf("run succeeded")
	}
	if log.Len() == 0 {
		t.Errorf("error not reported")
	}
}
