// Package seed loads an initial agent roster from a YAML file and registers it
// through the agent command handlers.
//
// A seed file looks like this:
//
//	agents:
//	  - name: Wanjiku
//	    phone: "+254700111222"
//	    vehicle: motorcycle
//	    active: true
//	    online: true
//	    zones:
//	      - name: CBD
//	        coordinates: [[36.80, -1.30], [36.84, -1.30], [36.84, -1.27], [36.80, -1.27]]
//
// Agents without an id get one derived from their phone number, so loading the
// same file twice registers nobody twice.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var agentNamespace = uuid.MustParse("8f6d3c1e-4b7a-4c55-9a63-0f5e2d7b9c41")

// File is the root of a seed document.
type File struct {
	Agents []Agent `yaml:"agents"`
}

// Agent is one agent entry.
type Agent struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Vehicle string `yaml:"vehicle"`
	Active  bool   `yaml:"active"`
	Online  bool   `yaml:"online"`
	Zones   []Zone `yaml:"zones"`
}

// Zone is a working zone ring of [lng, lat] pairs.
type Zone struct {
	Name        string      `yaml:"name"`
	Coordinates [][]float64 `yaml:"coordinates"`
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &f, nil
}

// Validate checks what the domain cannot: duplicate ids and unparsable ids.
// Names, vehicles and rings are validated by the commands themselves.
func (f *File) Validate() error {
	seen := make(map[kernel.UUID]int, len(f.Agents))
	var errs []error
	for i, a := range f.Agents {
		id, err := a.AgentID()
		if err != nil {
			errs = append(errs, fmt.Errorf("agents[%d]: %w", i, err))
			continue
		}
		if j, ok := seen[id]; ok {
			errs = append(errs, fmt.Errorf("agents[%d]: same id as agents[%d]", i, j))
			continue
		}
		seen[id] = i
	}
	return errors.Join(errs...)
}

// AgentID returns the explicit id, or one derived from the phone number.
func (a Agent) AgentID() (kernel.UUID, error) {
	if a.ID != "" {
		return kernel.UUIDFromString(a.ID)
	}
	if a.Phone == "" {
		return kernel.UUID{}, errors.New("either id or phone is required")
	}
	derived := uuid.NewSHA1(agentNamespace, []byte(a.Phone))
	return kernel.UUIDFromBytes(derived[:])
}
