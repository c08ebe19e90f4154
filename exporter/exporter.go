package exporter

import (
	"io"

	"github.com/charmbracelet/log"

	"value-exporter/value"
)

// Config holds configuration for exports.
type Config struct {
	// Optimize enables removal of dead and single-use bindings.
	Optimize bool
	// Logger receives a debug summary of every export. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns the default export configuration.
func DefaultConfig() Config {
	return Config{
		Optimize: true,
	}
}

// Exporter converts graphs into program text. It holds no per-export state
// and is safe for concurrent use.
type Exporter struct {
	config Config
	logger *log.Logger
}

// New creates an Exporter with the given configuration.
func New(config Config) *Exporter {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Exporter{config: config, logger: logger}
}

// Export converts root with the default configuration.
func Export(root value.Node) (string, error) {
	return New(DefaultConfig()).Export(root)
}

// Export converts root into program text. On failure no text is returned.
func (x *Exporter) Export(root value.Node) (string, error) {
	p, err := x.Program(root)
	if err != nil {
		return "", err
	}

	return p.String(), nil
}

// Program converts root into a Program.
func (x *Exporter) Program(root value.Node) (*Program, error) {
	e := newEmitter()

	p, err := e.emit(root)
	if err != nil {
		x.logger.Debug("export failed", "err", err)
		return nil, err
	}

	emitted := len(p.Stmts)
	if x.config.Optimize {
		p = Optimize(p)
	}

	st := p.Stats()
	x.logger.Debug("exported graph",
		"nodes", e.reg.Len(),
		"records", st.Records,
		"emitted", emitted,
		"statements", st.Statements,
		"bindings", st.Bindings,
	)

	return p, nil
}
