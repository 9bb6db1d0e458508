package acquire

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/ssargent/dmidb/pkg/config"
	"go.uber.org/zap"
)

// New builds the Source cfg selects.
func New(cfg config.Source) (Source, error) {
	switch cfg.Kind {
	case config.SourceAuto, "":
		return defaultAuto(), nil
	case config.SourceSysfs:
		return &SysfsSource{Dir: cfg.Path}, nil
	case config.SourceDevMem:
		return &MemorySource{Path: cfg.Path}, nil
	case config.SourceDump:
		if cfg.Path == "" {
			return nil, fmt.Errorf("dump source requires a path")
		}
		return &DumpSource{Path: cfg.Path}, nil
	case config.SourceRSMB:
		return &FirmwareTableSource{}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// AutoSource tries each candidate in turn and returns the first table read.
type AutoSource struct {
	Candidates []Source
}

func defaultAuto() *AutoSource {
	if runtime.GOOS == "windows" {
		return &AutoSource{Candidates: []Source{&FirmwareTableSource{}}}
	}
	return &AutoSource{Candidates: []Source{&SysfsSource{}, &MemorySource{}}}
}

// Acquire implements Source.
func (s *AutoSource) Acquire(ctx context.Context) (*RawTable, error) {
	var errs []error
	for _, candidate := range s.Candidates {
		raw, err := candidate.Acquire(ctx)
		if err == nil {
			return raw, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		Logger().Debug("source unavailable",
			zap.String("source", fmt.Sprintf("%T", candidate)),
			zap.Error(err),
		)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrUnsupported
	}
	return nil, fmt.Errorf("no SMBIOS source available: %w", errors.Join(errs...))
}
