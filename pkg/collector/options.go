package collector

import (
	"go.uber.org/zap"

	"github.com/mkarolak/hostprobe/pkg/secscan"
)

type Options struct {
	// Signatures is the security signature table used for process
	// classification.
	Signatures *secscan.Table
	// NativeFallbacks enables gopsutil-based fallbacks when a primary
	// command source yields no output at all. Disabled in tests so fake
	// sources fully control the result.
	NativeFallbacks bool
	Logger          *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Signatures:      secscan.NewTable(),
		NativeFallbacks: true,
		Logger:          zap.NewNop(),
	}
}
