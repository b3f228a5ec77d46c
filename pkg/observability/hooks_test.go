package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "hg38.json")
	p.OnLoadComplete(ctx, "hg38.json", 24, time.Second, nil)
	p.OnRenderStart(ctx, []string{"all"}, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"all"}, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	// View hooks
	v := NoopViewHooks{}
	v.OnModeSwitch("giesma", "all", 40, time.Millisecond)
	v.OnSelect("chr1:100-200 count:5")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := View().(NoopViewHooks); !ok {
		t.Error("View() should return NoopViewHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customView := &testViewHooks{}
	SetViewHooks(customView)
	if View() != customView {
		t.Error("SetViewHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := View().(NoopViewHooks); !ok {
		t.Error("Reset() should restore NoopViewHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testViewHooks struct{ NoopViewHooks }

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	tests := []struct {
		name string
		emit func()
		want []string
	}{
		{"load", func() { h.OnLoadComplete(ctx, "hg38", 24, time.Millisecond, nil) }, []string{"load done", "source=hg38", "contigs=24"}},
		{"render", func() { h.OnRenderStart(ctx, []string{"all"}, []string{"svg"}) }, []string{"render start"}},
		{"cache", func() { h.OnCacheSet(ctx, "artifact:ab", 512) }, []string{"cache set", "key=artifact:ab", "bytes=512"}},
		{"switch", func() { h.OnModeSwitch("giesma", "all", 12, time.Millisecond) }, []string{"requested=giesma", "effective=all"}},
		{"select", func() { h.OnSelect("chr1:1-2 count:3") }, []string{"select", "chr1:1-2 count:3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.emit()
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheHit(context.Background(), "k")
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %q", buf.String())
	}
}
