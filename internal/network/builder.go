// Package network builds the indexed neuron/synapse network from connectome
// rows.
//
// Neurons are placed in three contiguous index bands: sensory neurons first,
// then motor targets, then everything else. Each ordered pair of neurons
// holds at most one synapse group, and every group gets one weight drawn
// from a seeded generator in row-major pair order.
package network

import (
	"math"

	"github.com/nvandessel/bionet/internal/models"
)

// Params configures a build. MinWeight <= MaxWeight is the caller's
// responsibility.
type Params struct {
	MinWeight float32
	MaxWeight float32
	Seed      int64

	// Generator names the random stream: GeneratorGo (default) or
	// GeneratorJava.
	Generator string

	// Tracer receives build decisions. May be nil.
	Tracer Tracer
}

// Tracer records build decisions. *logging.DecisionLogger satisfies it.
type Tracer interface {
	Log(event map[string]any)
}

type builder struct {
	rows   []models.Row
	params Params
	net    *models.Network

	// index maps neuron names to their assigned index.
	index map[string]int

	// dangling lists non-motor targets that never appear as an origin or a
	// motor target, in first-seen order.
	dangling []string
}

// Build turns rows into a network. An empty row slice yields an empty
// network. An unknown generator name is reported as an error; nothing else
// fails.
func Build(rows []models.Row, p Params) (*models.Network, error) {
	gen, err := NewGenerator(p.Generator, p.Seed)
	if err != nil {
		return nil, err
	}

	b := &builder{
		rows:   rows,
		params: p,
		index:  make(map[string]int),
	}
	b.discover()
	b.assign()
	b.connect()
	b.weigh(gen)
	b.net.Seed = p.Seed
	return b.net, nil
}

// discover counts neurons per band. Band offsets depend on the totals, so
// this pass must finish before any index is assigned.
func (b *builder) discover() {
	var numNeurons, numSensors, numMotors int
	seen := make(map[string]bool)

	for _, r := range b.rows {
		if !seen[r.Origin] {
			seen[r.Origin] = true
			numNeurons++
			if r.Sensory {
				numSensors++
			}
		}
		if r.Motor && !seen[r.Target] {
			seen[r.Target] = true
			numNeurons++
			numMotors++
		}
	}

	for _, r := range b.rows {
		if !seen[r.Target] {
			seen[r.Target] = true
			numNeurons++
			b.dangling = append(b.dangling, r.Target)
		}
	}

	b.net = models.NewNetwork(numNeurons, numSensors, numMotors)
}

// assign gives every neuron its index and excitatory classification.
func (b *builder) assign() {
	s := 0
	m := b.net.NumSensors
	o := b.net.NumSensors + b.net.NumMotors

	for _, r := range b.rows {
		if _, ok := b.index[r.Origin]; !ok {
			if r.Sensory {
				b.place(r.Origin, s, !models.Inhibitory(r.Transmitter), models.BandSensory)
				s++
			} else {
				b.place(r.Origin, o, !models.Inhibitory(r.Type), models.BandOther)
				o++
			}
		}
		if r.Motor {
			if _, ok := b.index[r.Target]; !ok {
				b.place(r.Target, m, true, models.BandMotor)
				m++
			}
		}
	}

	for _, name := range b.dangling {
		b.place(name, o, true, models.BandOther)
		o++
	}
}

func (b *builder) place(name string, idx int, excitatory bool, band models.Band) {
	b.index[name] = idx
	b.net.Neurons[idx] = models.Neuron{
		Index:      idx,
		Name:       name,
		Excitatory: excitatory,
		Band:       band,
	}
	b.trace(map[string]any{
		"event":      "neuron_indexed",
		"neuron":     name,
		"index":      idx,
		"band":       string(band),
		"excitatory": excitatory,
	})
}

// connect stores one synapse group per ordered pair. A later row for the
// same pair replaces the earlier one.
func (b *builder) connect() {
	for _, r := range b.rows {
		key := models.PairKey{Origin: b.index[r.Origin], Target: b.index[r.Target]}
		if prev, ok := b.net.Groups[key]; ok {
			b.trace(map[string]any{
				"event":           "pair_overwritten",
				"origin":          r.Origin,
				"target":          r.Target,
				"old_connections": prev.Connections,
				"new_connections": r.Connections,
			})
		}
		b.net.Groups[key] = &models.SynapseGroup{
			Origin:      key.Origin,
			Target:      key.Target,
			Type:        r.Type,
			Connections: r.Connections,
			Transmitter: r.Transmitter,
		}
	}
}

// weigh draws exactly one value per populated pair in row-major order.
func (b *builder) weigh(gen Generator) {
	scale := b.params.MaxWeight - b.params.MinWeight
	for _, g := range b.net.SortedGroups() {
		g.Weight = scaleWeight(gen.Float32(), scale, b.params.MinWeight, b.params.MaxWeight)
		b.trace(map[string]any{
			"event":  "synapse_weighted",
			"origin": g.Origin,
			"target": g.Target,
			"weight": g.Weight,
		})
	}
}

// scaleWeight maps a draw in [0, 1) onto [lo, hi). Float32 rounding can
// land the result exactly on hi; such values are pulled just below it.
func scaleWeight(u, scale, lo, hi float32) float32 {
	w := float32(u*scale) + lo
	if w >= hi && hi > lo {
		w = math.Nextafter32(hi, lo)
	}
	return w
}

func (b *builder) trace(event map[string]any) {
	if b.params.Tracer != nil {
		b.params.Tracer.Log(event)
	}
}
