package collector

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mkarolak/hostprobe/pkg/secscan"
)

// fakeSource serves canned command output and file contents, keyed by the
// joined command line. Anything not present reads as unavailable.
type fakeSource struct {
	outputs map[string]string
	files   map[string]string
}

func (f *fakeSource) Output(_ context.Context, name string, args ...string) string {
	return f.outputs[strings.Join(append([]string{name}, args...), " ")]
}

func (f *fakeSource) ReadFile(path string) string {
	return f.files[path]
}

// testOptions keeps native fallbacks off so the fake source fully controls
// every collected value.
func testOptions() Options {
	return Options{
		Signatures:      secscan.NewTable(),
		NativeFallbacks: false,
		Logger:          zap.NewNop(),
	}
}
