// Package seed reads the starting library catalogue and train routes from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/actionlog/internal/library"
	"github.com/dshills/actionlog/internal/route"
)

//go:embed default.yaml
var defaultData []byte

// ErrUnknownRoute is returned when a route name is not in the seed.
var ErrUnknownRoute = errors.New("unknown route")

// Seed is the decoded seed file.
type Seed struct {
	Books  []Book  `yaml:"books"`
	Routes []Route `yaml:"routes"`
}

// Book is a catalogue entry.
type Book struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// Route describes a train route.
type Route struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"` // "linear" or "circular"
	Stations []Station `yaml:"stations"`
}

// Station is a stop on a route.
type Station struct {
	Name    string `yaml:"name"`
	Minutes int    `yaml:"minutes"`
}

// Default returns the built-in demo data.
func Default() *Seed {
	s, err := Parse(bytes.NewReader(defaultData))
	if err != nil {
		panic(fmt.Sprintf("seed: built-in data is invalid: %v", err))
	}
	return s
}

// Load reads a seed file. An empty path returns the built-in data.
func Load(path string) (*Seed, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates seed YAML.
func Parse(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Seed) validate() error {
	names := make(map[string]bool, len(s.Routes))
	for i, r := range s.Routes {
		if r.Name == "" {
			return fmt.Errorf("routes[%d]: name is empty", i)
		}
		if names[r.Name] {
			return fmt.Errorf("routes[%d]: duplicate route %q", i, r.Name)
		}
		names[r.Name] = true

		if _, err := parseKind(r.Kind); err != nil {
			return fmt.Errorf("route %q: %w", r.Name, err)
		}
		for j, st := range r.Stations {
			if strings.TrimSpace(st.Name) == "" {
				return fmt.Errorf("route %q: stations[%d]: name is empty", r.Name, j)
			}
			if st.Minutes < 0 {
				return fmt.Errorf("route %q: station %q: minutes must not be negative", r.Name, st.Name)
			}
		}
	}
	return nil
}

// Library builds a library holding the seed's books.
func (s *Seed) Library(opts ...library.Option) (*library.Library, error) {
	lib := library.New(opts...)
	for _, b := range s.Books {
		if _, err := lib.Add(b.Title, b.Author); err != nil {
			return nil, fmt.Errorf("adding %q: %w", b.Title, err)
		}
	}
	return lib, nil
}

// Route builds the named route.
func (s *Seed) Route(name string) (*route.Route, error) {
	for _, r := range s.Routes {
		if !strings.EqualFold(r.Name, name) {
			continue
		}
		kind, err := parseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		stations := make([]route.Station, len(r.Stations))
		for i, st := range r.Stations {
			stations[i] = route.Station{Name: st.Name, MinutesToNext: st.Minutes}
		}
		return route.New(kind, stations...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, name)
}

// RouteNames returns the route names in file order.
func (s *Seed) RouteNames() []string {
	names := make([]string, len(s.Routes))
	for i, r := range s.Routes {
		names[i] = r.Name
	}
	return names
}

func parseKind(kind string) (route.Kind, error) {
	switch strings.ToLower(kind) {
	case "linear", "":
		return route.Linear, nil
	case "circular", "loop":
		return route.Circular, nil
	default:
		return route.Linear, fmt.Errorf("unknown route kind %q", kind)
	}
}
