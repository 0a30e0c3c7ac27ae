package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	p, err := Load([]string{"1000"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.N != "1000" {
		t.Errorf("N = %q, want %q", p.N, "1000")
	}
	if p.Method != SmoothExhaustGaussian {
		t.Errorf("Method = %v, want default SmoothExhaustGaussian", p.Method)
	}
	if p.NodeCount != 1 || p.NodeID != 0 {
		t.Errorf("NodeCount/NodeID = %d/%d, want 1/0", p.NodeCount, p.NodeID)
	}
	if p.ThreadCount < 1 {
		t.Errorf("ThreadCount = %d, want >= 1 (auto-detected)", p.ThreadCount)
	}
}

func TestLoadMissingN(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Errorf("Load(nil) returned no error, want an error for missing N")
	}
}

func TestLoadPositionalOverridesOrder(t *testing.T) {
	// to_factor, method, node_count, node_id, gear_level, wheel_level,
	// sieving_bound_multiplier, smoothness_bound_multiplier,
	// batch_size_multiplier, thread_count, gaussian_elimination_row_offset,
	// check_small_factors.
	argv := []string{"221", "0", "2", "1", "9", "4", "2.0", "1.5", "0.5", "4", "3", "0"}
	p, err := Load(argv)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cases := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"N", p.N, "221"},
		{"Method", p.Method, BruteForce},
		{"NodeCount", p.NodeCount, 2},
		{"NodeID", p.NodeID, 1},
		{"GearLevel", p.GearLevel, 9},
		{"WheelLevel", p.WheelLevel, 4},
		{"SievingBoundMultiplier", p.SievingBoundMultiplier, 2.0},
		{"SmoothnessBoundMultiplier", p.SmoothnessBoundMultiplier, 1.5},
		{"BatchSizeMultiplier", p.BatchSizeMultiplier, 0.5},
		{"ThreadCount", p.ThreadCount, 4},
		{"GaussianEliminationOffset", p.GaussianEliminationOffset, 3},
		{"CheckSmallFactors", p.CheckSmallFactors, false},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestClampGearBelowWheel(t *testing.T) {
	p, err := Load([]string{"221", "2", "1", "0", "3", "5"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.GearLevel < p.WheelLevel {
		t.Errorf("GearLevel %d < WheelLevel %d after clamping", p.GearLevel, p.WheelLevel)
	}
}

func TestClampWheelLevelCap(t *testing.T) {
	p, err := Load([]string{"221", "2", "1", "0", "20", "20"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.WheelLevel > MaxHardcodedWheelLevel {
		t.Errorf("WheelLevel = %d, want <= %d", p.WheelLevel, MaxHardcodedWheelLevel)
	}
	if p.GearLevel > MaxHardcodedWheelLevel {
		t.Errorf("GearLevel = %d, want <= %d", p.GearLevel, MaxHardcodedWheelLevel)
	}
}

func TestClampNodeID(t *testing.T) {
	p, err := Load([]string{"221", "2", "3", "9"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.NodeID < 0 || p.NodeID >= p.NodeCount {
		t.Errorf("NodeID = %d out of range [0, %d) after clamping", p.NodeID, p.NodeCount)
	}
}
