package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/chordex/bucket"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/progression"
)

var (
	// ErrEmptyResult is a warning: the source decoded but had no onsets.
	ErrEmptyResult = errors.New("source has no onset bars")
	ErrNoResults   = errors.New("no results")
)

// SourceReadError means a source could not be opened or decoded.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type FileSource string

func (f FileSource) Name() string {
	return string(f)
}

func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

type ReaderSource struct {
	ID   string
	Data []byte
}

func (r ReaderSource) Name() string {
	return r.ID
}

func (r ReaderSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(r.Data)), nil
}

func FileSources(paths []string) []Source {
	res := make([]Source, 0, len(paths))
	for _, p := range paths {
		res = append(res, FileSource(p))
	}
	return res
}

type Options struct {
	BarsPerBeat int
	// TicksPerBar overrides the bar size derived from the file resolution.
	TicksPerBar uint32
	// Progress receives a progress bar when set.
	Progress    io.Writer
}

type SourceResult struct {
	Source      string
	TicksPerBar uint32
	Progression *model.Progression
	Err         error
}

func (s SourceResult) OK() bool {
	return s.Err == nil
}

type Result struct {
	ID          uuid.UUID
	Sources     []SourceResult
	Progression *model.Progression
}

func (r *Result) Converted() []SourceResult {
	var res []SourceResult
	for _, s := range r.Sources {
		if s.OK() {
			res = append(res, s)
		}
	}
	return res
}

func (r *Result) Failed() []SourceResult {
	var res []SourceResult
	for _, s := range r.Sources {
		if !s.OK() {
			res = append(res, s)
		}
	}
	return res
}

// ConvertSMF turns one decoded file into a progression with its original
// bar numbers.
func ConvertSMF(s *smf.SMF, opts Options) (*model.Progression, uint32, error) {
	tpq, err := midi.TicksPerQuarter(s)
	if err != nil && opts.TicksPerBar == 0 {
		return nil, 0, err
	}
	ticksPerBar := bucket.TicksPerBar(tpq, opts.BarsPerBeat, opts.TicksPerBar)
	observations, err := bucket.Bucketize(midi.Events(s), ticksPerBar)
	if err != nil {
		return nil, ticksPerBar, err
	}
	if len(observations) == 0 {
		return nil, ticksPerBar, ErrEmptyResult
	}
	return progression.FromObservations(observations), ticksPerBar, nil
}

func ConvertSource(src Source, opts Options) (*model.Progression, uint32, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, 0, &SourceReadError{Source: src.Name(), Err: err}
	}
	defer rc.Close()

	s, err := midi.ReadFrom(rc)
	if err != nil {
		return nil, 0, &SourceReadError{Source: src.Name(), Err: err}
	}

	p, ticksPerBar, err := ConvertSMF(s, opts)
	if errors.Is(err, midi.ErrNotMetric) {
		return nil, 0, &SourceReadError{Source: src.Name(), Err: err}
	}
	return p, ticksPerBar, err
}

// ConvertAll converts every source in order. A failing source is logged and
// skipped; the merged progression is built from the ones that worked. The
// error is ErrNoResults only when nothing converted.
func ConvertAll(sources []Source, opts Options) (*Result, error) {
	res := &Result{ID: uuid.New()}
	log := slog.With("batch", res.ID.String())

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(
			len(sources),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Converting...[reset]"),
		)
	}

	var converted []*model.Progression
	for _, src := range sources {
		p, ticksPerBar, err := ConvertSource(src, opts)
		res.Sources = append(res.Sources, SourceResult{
			Source:      src.Name(),
			TicksPerBar: ticksPerBar,
			Progression: p,
			Err:         err,
		})

		var readErr *SourceReadError
		switch {
		case errors.As(err, &readErr):
			log.Error("skipping source", "source", filepath.Base(src.Name()), "err", readErr.Err)
		case errors.Is(err, ErrEmptyResult):
			log.Warn("source produced no bars", "source", filepath.Base(src.Name()))
		case err != nil:
			log.Error("skipping source", "source", filepath.Base(src.Name()), "err", err)
		default:
			log.Debug("converted source", "source", src.Name(), "bars", len(p.Bars), "ticksPerBar", ticksPerBar)
			converted = append(converted, p)
		}

		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if len(converted) == 0 {
		return res, ErrNoResults
	}
	res.Progression = progression.Merge(converted...)
	return res, nil
}
