// Package service connects file readers, bank profiles and the
// normalization engine for the CLI and HTTP shells.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/statements/internal/aggregate"
	"github.com/cleared-dev/statements/internal/engine"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/profile"
	"github.com/cleared-dev/statements/internal/reader"
)

// ErrUnknownProfile is returned when a request names a profile that is not registered.
var ErrUnknownProfile = errors.New("unknown profile")

// Service normalizes statement files.
type Service struct {
	readers        *reader.Registry
	profiles       *profile.Registry
	loc            *time.Location
	headerRow      int
	defaultProfile string
}

// Params holds the settings a Service falls back to when a request leaves them unset.
type Params struct {
	Readers        *reader.Registry
	Profiles       *profile.Registry
	Location       *time.Location
	HeaderRow      int
	DefaultProfile string
}

// New creates a Service.
func New(p Params) *Service {
	if p.Readers == nil {
		p.Readers = reader.DefaultRegistry()
	}
	if p.Profiles == nil {
		p.Profiles = profile.DefaultRegistry()
	}
	if p.Location == nil {
		p.Location = time.UTC
	}
	if p.DefaultProfile == "" {
		p.DefaultProfile = profile.Standard
	}
	return &Service{
		readers:        p.Readers,
		profiles:       p.Profiles,
		loc:            p.Location,
		headerRow:      p.HeaderRow,
		defaultProfile: p.DefaultProfile,
	}
}

// Request describes one statement file to normalize.
type Request struct {
	FileName  string
	Profile   string // empty means the service default
	HeaderRow *int   // nil means the service default
	From      string
	To        string
}

// Output is a normalized statement plus run metadata.
type Output struct {
	StatementID string        `json:"statement_id"`
	Sheet       string        `json:"sheet"`
	Profile     string        `json:"profile"`
	Elapsed     time.Duration `json:"-"`
	ElapsedMS   float64       `json:"elapsed_ms"`
	model.Result
}

// Profiles returns all registered profiles.
func (s *Service) Profiles() []profile.Profile {
	return s.profiles.All()
}

// Process reads src as the file named in req and normalizes it. Reader
// failures fail the whole request; bad rows only lower the surviving count.
func (s *Service) Process(ctx context.Context, src io.ReadSeeker, req Request) (Output, error) {
	log := logger.FromContext(ctx)

	name := req.Profile
	if name == "" {
		name = s.defaultProfile
	}
	p, ok := s.profiles.Get(name)
	if !ok {
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	opts := engine.Options{Location: s.loc, From: req.From, To: req.To}
	if err := opts.Validate(); err != nil {
		return Output{}, err
	}

	headerRow := s.headerRow
	if req.HeaderRow != nil {
		headerRow = *req.HeaderRow
	}

	sheet, err := s.readers.Read(req.FileName, src, headerRow)
	if err != nil {
		return Output{}, fmt.Errorf("reading %s: %w", req.FileName, err)
	}

	res, elapsed := engine.Normalize(sheet.Rows, p, opts)
	out := Output{
		StatementID: uuid.NewString(),
		Sheet:       sheet.Name,
		Profile:     p.Name,
		Elapsed:     elapsed,
		ElapsedMS:   float64(elapsed.Microseconds()) / 1000,
		Result:      res,
	}

	for _, verr := range aggregate.Validate(res) {
		log.Warn().
			Str("statement_id", out.StatementID).
			Str("check", verr.Check).
			Str("ref", verr.Ref).
			Msg(verr.Description)
	}

	log.Info().
		Str("statement_id", out.StatementID).
		Str("file", req.FileName).
		Str("profile", p.Name).
		Int("rows_read", res.RowsRead).
		Int("rows_skipped", res.RowsSkipped).
		Int("transactions", len(res.Transactions)).
		Dur("elapsed", elapsed).
		Msg("statement normalized")

	return out, nil
}

// Preview returns the first rows of the file without header detection.
func (s *Service) Preview(fileName string, src io.ReadSeeker, limit int) (string, [][]string, error) {
	rd, err := s.readers.ForFile(fileName)
	if err != nil {
		return "", nil, err
	}
	g, err := rd.Grid(src)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	return g.Name, reader.Preview(g, limit), nil
}
