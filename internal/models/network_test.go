package models

import (
	"reflect"
	"testing"
)

func sampleNetwork() *Network {
	n := NewNetwork(4, 1, 1)
	n.Neurons[0] = Neuron{Index: 0, Name: "ASHL", Excitatory: true, Band: BandSensory}
	n.Neurons[1] = Neuron{Index: 1, Name: "MuscleA", Excitatory: true, Band: BandMotor}
	n.Neurons[2] = Neuron{Index: 2, Name: "AVAL", Excitatory: true, Band: BandOther}
	n.Neurons[3] = Neuron{Index: 3, Name: "DD1", Excitatory: false, Band: BandOther}
	n.Groups[PairKey{3, 1}] = &SynapseGroup{Origin: 3, Target: 1, Type: MuscleType, Connections: 3}
	n.Groups[PairKey{0, 2}] = &SynapseGroup{Origin: 0, Target: 2, Type: "Send", Connections: 2}
	n.Groups[PairKey{2, 3}] = &SynapseGroup{Origin: 2, Target: 3, Type: GapJunctionType, Connections: 1}
	n.Groups[PairKey{2, 0}] = &SynapseGroup{Origin: 2, Target: 0, Type: "Send", Connections: 0}
	return n
}

func TestNetwork_BandOf(t *testing.T) {
	n := sampleNetwork()
	want := []Band{BandSensory, BandMotor, BandOther, BandOther}
	for i, b := range want {
		if got := n.BandOf(i); got != b {
			t.Errorf("BandOf(%d) = %s, want %s", i, got, b)
		}
	}
	if n.NumOther() != 2 {
		t.Errorf("NumOther() = %d, want 2", n.NumOther())
	}
}

func TestNetwork_Pairs(t *testing.T) {
	got := sampleNetwork().Pairs()
	want := []PairKey{{0, 2}, {2, 0}, {2, 3}, {3, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestNetwork_Stats(t *testing.T) {
	got := sampleNetwork().Stats()
	want := Stats{
		Neurons:         4,
		Sensors:         1,
		Motors:          1,
		Others:          2,
		Excitatory:      3,
		ExcitatoryRatio: 0.75,
		Groups:          4,
		GapJunctions:    1,
		Synapses:        6,
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	if empty := NewNetwork(0, 0, 0).Stats(); empty.ExcitatoryRatio != 0 {
		t.Errorf("empty network ratio = %v, want 0", empty.ExcitatoryRatio)
	}
}

func TestNetwork_NeuronByName(t *testing.T) {
	n := sampleNetwork()
	if nr, ok := n.NeuronByName("DD1"); !ok || nr.Index != 3 {
		t.Errorf("NeuronByName(DD1) = %+v, %v", nr, ok)
	}
	if _, ok := n.NeuronByName("RIML"); ok {
		t.Error("unexpected match for RIML")
	}
}

func TestSynapseGroup_TypeCode(t *testing.T) {
	tests := []struct {
		typ  string
		want int
	}{
		{GapJunctionType, 1},
		{"Send", 0},
		{MuscleType, 0},
		{"gapjunction", 0},
	}
	for _, tt := range tests {
		g := SynapseGroup{Type: tt.typ}
		if got := g.TypeCode(); got != tt.want {
			t.Errorf("TypeCode(%q) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestInhibitory(t *testing.T) {
	for label, want := range map[string]bool{
		"GABA":          true,
		"GABAergic":     true,
		"Acetylcholine": false,
		"gaba":          false,
		"":              false,
	} {
		if got := Inhibitory(label); got != want {
			t.Errorf("Inhibitory(%q) = %v, want %v", label, got, want)
		}
	}
}
