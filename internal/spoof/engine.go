package spoof

import (
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/logging"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/rules"
)

// ChromebookVendor is the motherboard vendor string of Chromebooks. Detect
// matches it case-insensitively.
const ChromebookVendor = "GOOGLE"

// Dataset recognizes Chromebook-specific device/subsystem ID pairs.
// *pcidata.Dataset implements it.
type Dataset interface {
	Match(deviceID, subsystemID string) bool
}

// Engine runs detection and substitution over hardware records.
type Engine struct {
	dataset Dataset
	rules   *rules.Set
	logger  logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrNop(l)
	}
}

// New creates an engine. A nil rule set selects rules.Defaults(); the set
// is copied so later changes by the caller do not affect the engine. A nil
// dataset matches no devices.
func New(dataset Dataset, set *rules.Set, opts ...Option) *Engine {
	if set == nil {
		set = rules.Defaults()
	} else {
		set = set.Clone()
	}

	e := &Engine{
		dataset: dataset,
		rules:   set,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) matchDevice(deviceID, subsystemID string) bool {
	if e.dataset == nil {
		return false
	}
	return e.dataset.Match(deviceID, subsystemID)
}
