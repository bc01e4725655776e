//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestTiming(t *testing.T) {
	timing := NewTiming()
	timing.Sample("Parse", []string{"4"})

	var stats Stats
	stats.Count[H] = 3
	stats.Time[H] = time.Millisecond
	stats.Count[Measure] = 1
	stats.Time[Measure] = time.Millisecond
	stats.Count[Draw] = 1

	sample := timing.RunSample("Run", &stats)
	if len(sample.Samples) != 2 {
		t.Fatalf("got %d sub-samples, expected 2", len(sample.Samples))
	}
	if sample.Samples[0].Label != "H" || sample.Samples[0].Count != 3 {
		t.Errorf("unexpected sub-sample %s/%d", sample.Samples[0].Label,
			sample.Samples[0].Count)
	}
	if sample.Cols[0] != "5" {
		t.Errorf("unexpected gate count %s", sample.Cols[0])
	}

	var buf bytes.Buffer
	timing.Print(&buf)
	for _, s := range []string{"Parse", "Run", "Total", "Gates"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("report does not contain %q:\n%s", s, buf.String())
		}
	}
}
