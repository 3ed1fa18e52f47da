package observability_test

import (
	"testing"

	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/observability"
)

// countingHooks records table events for assertions.
type countingHooks struct {
	observability.NoopTableHooks
	hits, misses, inserts, resets int
}

func (h *countingHooks) OnHit()           { h.hits++ }
func (h *countingHooks) OnMiss()          { h.misses++ }
func (h *countingHooks) OnInsert(int)     { h.inserts++ }
func (h *countingHooks) OnReset(int, int) { h.resets++ }

func TestTableHooks_ReceiveEvents(t *testing.T) {
	h := &countingHooks{}
	observability.SetTableHooks(h)
	defer observability.Reset()

	tbl := dd.New()
	tbl.Unique(0, []dd.Succ{{Weight: 1}, {Weight: 0}}) // miss + insert
	tbl.Unique(0, []dd.Succ{{Weight: 1}, {Weight: 0}}) // hit
	tbl.Reset()

	if h.misses != 1 || h.inserts != 1 {
		t.Errorf("misses = %d, inserts = %d, want 1 and 1", h.misses, h.inserts)
	}
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}
	if h.resets != 1 {
		t.Errorf("resets = %d, want 1", h.resets)
	}
}

func TestSetTableHooks_NilKeepsCurrent(t *testing.T) {
	h := &countingHooks{}
	observability.SetTableHooks(h)
	defer observability.Reset()

	observability.SetTableHooks(nil)

	if observability.Table() != observability.TableHooks(h) {
		t.Error("SetTableHooks(nil) replaced the registered hooks")
	}
}

func TestReset_RestoresNoop(t *testing.T) {
	observability.SetTableHooks(&countingHooks{})
	observability.Reset()

	if _, ok := observability.Table().(observability.NoopTableHooks); !ok {
		t.Error("Reset() did not restore the no-op table hooks")
	}
}
