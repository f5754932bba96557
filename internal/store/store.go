// Package store persists sample chains on disk, one directory per
// chain: metadata.json describes the shape, labels, and truths;
// samples.csv holds one row per (timestep, walker).
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/bfarr/prism/internal/cube"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ChainMetadata struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	Steps   int       `json:"steps"`
	Walkers int       `json:"walkers"`
	Dim     int       `json:"dim"`
	Seed    int64     `json:"seed"`
	Labels  []string  `json:"labels,omitempty"`
	Truths  []float64 `json:"truths,omitempty"`
}

// Save writes a chain and returns its ID.
func (s *Store) Save(name string, c *cube.SampleCube, labels []string, truths []float64, seed int64) (string, error) {
	if err := c.ValidateLabels(labels); err != nil {
		return "", err
	}
	if err := c.ValidateTruths(truths); err != nil {
		return "", err
	}

	steps, walkers, dim := c.Shape()
	id := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	chainDir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(chainDir, 0755); err != nil {
		return "", err
	}

	meta := ChainMetadata{
		ID:      id,
		Name:    name,
		Created: time.Now(),
		Steps:   steps,
		Walkers: walkers,
		Dim:     dim,
		Seed:    seed,
		Labels:  labels,
		Truths:  truths,
	}

	metaFile, err := os.Create(filepath.Join(chainDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(chainDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"step", "walker"}
	for d := 0; d < dim; d++ {
		header = append(header, fmt.Sprintf("p%d", d))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	row := make([]string, len(header))
	for t := 0; t < steps; t++ {
		for walker := 0; walker < walkers; walker++ {
			row[0] = strconv.Itoa(t)
			row[1] = strconv.Itoa(walker)
			for d := 0; d < dim; d++ {
				row[2+d] = strconv.FormatFloat(c.At(t, walker, d), 'g', -1, 64)
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	return id, w.Error()
}

// Load reads a chain back by ID.
func (s *Store) Load(id string) (*cube.SampleCube, *ChainMetadata, error) {
	chainDir := filepath.Join(s.baseDir, id)

	metaData, err := os.ReadFile(filepath.Join(chainDir, "metadata.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("chain %s: %w", id, err)
	}
	var meta ChainMetadata
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(chainDir, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("chain %s: empty samples file", id)
	}

	c, err := cube.New(meta.Steps, meta.Walkers, meta.Dim)
	if err != nil {
		return nil, nil, err
	}

	for _, rec := range records[1:] {
		if len(rec) != 2+meta.Dim {
			return nil, nil, fmt.Errorf("chain %s: row has %d fields, want %d", id, len(rec), 2+meta.Dim)
		}
		t, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, nil, err
		}
		walker, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, nil, err
		}
		if t < 0 || t >= meta.Steps || walker < 0 || walker >= meta.Walkers {
			return nil, nil, fmt.Errorf("chain %s: sample (%d, %d) outside %dx%d shape",
				id, t, walker, meta.Steps, meta.Walkers)
		}
		for d := 0; d < meta.Dim; d++ {
			v, err := strconv.ParseFloat(rec[2+d], 64)
			if err != nil {
				return nil, nil, err
			}
			c.Set(t, walker, d, v)
		}
	}

	return c, &meta, nil
}

// List returns metadata for every stored chain, newest first.
func (s *Store) List() ([]ChainMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var chains []ChainMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue // not a chain directory
		}
		var meta ChainMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		chains = append(chains, meta)
	}

	sort.Slice(chains, func(i, j int) bool {
		return chains[i].Created.After(chains[j].Created)
	})
	return chains, nil
}
