package xsec

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/gubarz/pandatools/internal/logging"
)

const (
	// DefaultDarkMatterMass is the dark-matter mass of the resonant tables
	// when the caller does not pick one.
	DefaultDarkMatterMass = 100
	// NominalScenario is the resonant coupling scenario used by default.
	NominalScenario = "nominal"

	// headerMarker identifies the column header of non-resonant tables.
	headerMarker = "med dm"
)

// ErrNotFound is returned when a table is missing or holds no matching model.
var ErrNotFound = errors.New("model not found")

// ParseError reports a table line that could not be read.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Tables reads model tables below a base directory.
type Tables struct {
	dir string
	fs  afero.Fs
	log *logging.Logger
}

// Option customises Tables.
type Option func(*Tables)

// WithFs sets the filesystem the tables are read from.
func WithFs(fs afero.Fs) Option {
	return func(t *Tables) {
		if fs != nil {
			t.fs = fs
		}
	}
}

// WithLogger sets the logger used to report unreadable tables.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tables) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTables creates a table reader rooted at dir, the directory holding the
// non-resonant/ and resonant/ subdirectories.
func NewTables(dir string, opts ...Option) *Tables {
	t := &Tables{
		dir: dir,
		fs:  afero.NewOsFs(),
		log: logging.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dir returns the base directory.
func (t *Tables) Dir() string {
	return t.dir
}

// NonResonantPath returns the table path for a non-resonant mass point.
func (t *Tables) NonResonantPath(mV, mDM int) string {
	return filepath.Join(t.dir, "non-resonant", fmt.Sprintf("%d_%d_xsec_gencut.dat", mV, mDM))
}

// ResonantPath returns the table path for a resonant mass point.
func (t *Tables) ResonantPath(mV, mDM int) string {
	return filepath.Join(t.dir, "resonant", fmt.Sprintf("%d_%d.dat", mV, mDM))
}

// ReadNonResonant returns the non-resonant model at (mV, mDM). With nil
// couplings the first record of the table is the nominal model; otherwise
// the first record whose couplings equal the requested ones is returned.
func (t *Tables) ReadNonResonant(mV, mDM int, couplings *Couplings) (ModelParams, error) {
	var found ModelParams
	var ok bool
	err := t.scanNonResonant(mV, mDM, "xsec.ReadNonResonant", func(p ModelParams) bool {
		if couplings != nil && p.Couplings() != *couplings {
			return true
		}
		found, ok = p, true
		return false
	})
	if err != nil {
		return ModelParams{}, err
	}
	if !ok {
		return ModelParams{}, ErrNotFound
	}
	return found, nil
}

// NonResonantModels returns every record of a non-resonant table in file order.
func (t *Tables) NonResonantModels(mV, mDM int) ([]ModelParams, error) {
	var models []ModelParams
	err := t.scanNonResonant(mV, mDM, "xsec.NonResonantModels", func(p ModelParams) bool {
		models = append(models, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return models, nil
}

// ReadResonant returns the resonant model at (mV, mDM) for a coupling
// scenario. The tables only carry a cross section per scenario, so the
// couplings are fixed placeholders.
func (t *Tables) ReadResonant(mV, mDM int, scenario string) (ModelParams, error) {
	if scenario == "" {
		scenario = NominalScenario
	}

	var found ModelParams
	var ok bool
	err := t.scanResonant(mV, mDM, "xsec.ReadResonant", func(s Scenario) bool {
		if s.Label != scenario {
			return true
		}
		found, ok = resonantModel(mV, mDM, s.Sigma), true
		return false
	})
	if err != nil {
		return ModelParams{}, err
	}
	if !ok {
		return ModelParams{}, ErrNotFound
	}
	return found, nil
}

// ResonantScenarios returns every scenario of a resonant table in file order.
func (t *Tables) ResonantScenarios(mV, mDM int) ([]Scenario, error) {
	var scenarios []Scenario
	err := t.scanResonant(mV, mDM, "xsec.ResonantScenarios", func(s Scenario) bool {
		scenarios = append(scenarios, s)
		return true
	})
	if err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (t *Tables) scanNonResonant(mV, mDM int, module string, visit func(ModelParams) bool) error {
	file := t.NonResonantPath(mV, mDM)
	return t.scanLines(file, module, func(n int, line string) (bool, error) {
		if strings.Contains(line, headerMarker) || strings.TrimSpace(line) == "" {
			return true, nil
		}
		p, err := parseModelLine(line)
		if err != nil {
			return false, &ParseError{File: file, Line: n, Err: err}
		}
		return visit(p), nil
	})
}

func (t *Tables) scanResonant(mV, mDM int, module string, visit func(Scenario) bool) error {
	file := t.ResonantPath(mV, mDM)
	return t.scanLines(file, module, func(n int, line string) (bool, error) {
		if strings.TrimSpace(line) == "" {
			return true, nil
		}
		s, err := parseScenarioLine(line)
		if err != nil {
			return false, &ParseError{File: file, Line: n, Err: err}
		}
		return visit(s), nil
	})
}

// scanLines feeds each line of file to fn until fn asks to stop or fails.
// The file is closed on every return path.
func (t *Tables) scanLines(file, module string, fn func(n int, line string) (bool, error)) error {
	f, err := t.fs.Open(file)
	if err != nil {
		t.log.Error(module, "Could not open "+file)
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		more, err := fn(n, scanner.Text())
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	return nil
}

func parseModelLine(line string) (ModelParams, error) {
	fields := strings.Fields(line)
	if len(fields) != modelColumns {
		return ModelParams{}, fmt.Errorf("expected %d columns, got %d", modelColumns, len(fields))
	}
	var v [modelColumns]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ModelParams{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		v[i] = x
	}
	return ModelParams{
		MV:    v[0],
		MDM:   v[1],
		GVDM:  v[2],
		GADM:  v[3],
		GVQ:   v[4],
		GAQ:   v[5],
		Sigma: v[6],
		Delta: v[7],
	}, nil
}

func parseScenarioLine(line string) (Scenario, error) {
	label, value, ok := strings.Cut(line, ":")
	if !ok {
		return Scenario{}, errors.New("missing ':' separator")
	}
	sigma, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Scenario{}, fmt.Errorf("sigma: %w", err)
	}
	return Scenario{Label: strings.TrimSpace(label), Sigma: sigma}, nil
}
