// Package config resolves the engine's parameters from three layers, in
// increasing priority: built-in defaults, FINDAFACTOR_* environment
// variables, and CLI positional arguments. CLI arguments always override
// environment variables, which always override the defaults.
package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
)

// Method names which search strategy the engine should run.
type Method int

const (
	BruteForce Method = iota
	SmoothExhaustDuplicates
	SmoothExhaustGaussian
	PrimeProver
)

// Params is the fully resolved parameter set find_a_factor accepts:
// N_decimal, method, node_count, node_id, gear_level, wheel_level,
// sieving_bound_multiplier, smoothness_bound_multiplier,
// batch_size_multiplier, thread_count, gaussian_elimination_row_offset,
// and check_small_factors.
type Params struct {
	N          string
	Method     Method
	NodeCount  int
	NodeID     int
	GearLevel  int
	WheelLevel int

	SievingBoundMultiplier     float64
	SmoothnessBoundMultiplier  float64
	BatchSizeMultiplier        float64
	ThreadCount                int
	GaussianEliminationOffset  int
	CheckSmallFactors          bool
}

// MaxHardcodedWheelLevel caps gear_level and wheel_level: both are capped
// at 11 for the hard-coded wheel level, with a warning logged on
// violation and the value silently clamped.
const MaxHardcodedWheelLevel = 11

// Defaults returns the built-in defaults, the lowest-priority layer.
func Defaults() Params {
	return Params{
		Method:                    SmoothExhaustGaussian,
		NodeCount:                 1,
		NodeID:                    0,
		GearLevel:                 11,
		WheelLevel:                5,
		SievingBoundMultiplier:    1.0,
		SmoothnessBoundMultiplier: 1.0,
		BatchSizeMultiplier:       0.75,
		ThreadCount:               0, // 0 means "use runtime.NumCPU()"
		GaussianEliminationOffset: 0,
		CheckSmallFactors:         true,
	}
}

// Load resolves Params from defaults, then FINDAFACTOR_* environment
// variables, then argv (os.Args[1:], N_decimal first and required). It
// logs a warning and clamps rather than failing on out-of-range
// parameters.
func Load(argv []string) (Params, error) {
	p := Defaults()
	overlayEnv(&p)
	if err := overlayArgv(&p, argv); err != nil {
		return Params{}, err
	}
	clamp(&p)
	if p.ThreadCount <= 0 {
		p.ThreadCount = runtime.NumCPU()
	}
	return p, nil
}

func overlayEnv(p *Params) {
	if v, ok := os.LookupEnv("FINDAFACTOR_METHOD"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.Method = Method(n)
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_NODE_COUNT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.NodeCount = n
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_NODE_ID"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.NodeID = n
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_GEAR_LEVEL"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.GearLevel = n
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_WHEEL_LEVEL"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.WheelLevel = n
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_SIEVING_BOUND_MULTIPLIER"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.SievingBoundMultiplier = f
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_SMOOTHNESS_BOUND_MULTIPLIER"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.SmoothnessBoundMultiplier = f
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_BATCH_SIZE_MULTIPLIER"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.BatchSizeMultiplier = f
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_THREAD_COUNT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.ThreadCount = n
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_GAUSSIAN_ELIMINATION_ROW_OFFSET"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.GaussianEliminationOffset = n
		}
	}
	if v, ok := os.LookupEnv("FINDAFACTOR_CHECK_SMALL_FACTORS"); ok {
		p.CheckSmallFactors = v != "" && v != "0" && v != "False"
	}
}

// overlayArgv reads positional arguments in order: to_factor, method,
// node_count, node_id, gear_level, wheel_level,
// sieving_bound_multiplier, smoothness_bound_multiplier,
// batch_size_multiplier, thread_count, gaussian_elimination_row_offset,
// check_small_factors.
func overlayArgv(p *Params, argv []string) error {
	if len(argv) < 1 {
		return fmt.Errorf("findafactor: missing required argument N (decimal integer to factor)")
	}
	p.N = argv[0]

	atoi := func(i int, dst *int) error {
		if len(argv) <= i {
			return nil
		}
		n, err := strconv.Atoi(argv[i])
		if err != nil {
			return fmt.Errorf("findafactor: argument %d (%q) is not an integer: %w", i+1, argv[i], err)
		}
		*dst = n
		return nil
	}
	atof := func(i int, dst *float64) error {
		if len(argv) <= i {
			return nil
		}
		f, err := strconv.ParseFloat(argv[i], 64)
		if err != nil {
			return fmt.Errorf("findafactor: argument %d (%q) is not a number: %w", i+1, argv[i], err)
		}
		*dst = f
		return nil
	}

	var method int
	method = int(p.Method)
	if err := atoi(1, &method); err != nil {
		return err
	}
	p.Method = Method(method)

	if err := atoi(2, &p.NodeCount); err != nil {
		return err
	}
	if err := atoi(3, &p.NodeID); err != nil {
		return err
	}
	if err := atoi(4, &p.GearLevel); err != nil {
		return err
	}
	if err := atoi(5, &p.WheelLevel); err != nil {
		return err
	}
	if err := atof(6, &p.SievingBoundMultiplier); err != nil {
		return err
	}
	if err := atof(7, &p.SmoothnessBoundMultiplier); err != nil {
		return err
	}
	if err := atof(8, &p.BatchSizeMultiplier); err != nil {
		return err
	}
	if err := atoi(9, &p.ThreadCount); err != nil {
		return err
	}
	if err := atoi(10, &p.GaussianEliminationOffset); err != nil {
		return err
	}
	if len(argv) > 11 {
		p.CheckSmallFactors = argv[11] != "" && argv[11] != "0" && argv[11] != "False"
	}

	return nil
}

// clamp enforces parameter range constraints, logging a warning and
// silently clamping rather than failing.
func clamp(p *Params) {
	if p.NodeCount < 1 {
		log.Printf("findafactor: node_count %d < 1, clamping to 1", p.NodeCount)
		p.NodeCount = 1
	}
	if p.NodeID < 0 || p.NodeID >= p.NodeCount {
		log.Printf("findafactor: node_id %d out of [0, %d), clamping to 0", p.NodeID, p.NodeCount)
		p.NodeID = 0
	}
	if p.WheelLevel > MaxHardcodedWheelLevel {
		log.Printf("findafactor: wheel_level %d exceeds hard-coded wheel cap %d, clamping", p.WheelLevel, MaxHardcodedWheelLevel)
		p.WheelLevel = MaxHardcodedWheelLevel
	}
	if p.GearLevel > MaxHardcodedWheelLevel {
		log.Printf("findafactor: gear_level %d exceeds hard-coded wheel cap %d, clamping", p.GearLevel, MaxHardcodedWheelLevel)
		p.GearLevel = MaxHardcodedWheelLevel
	}
	if p.GearLevel < p.WheelLevel {
		log.Printf("findafactor: gear_level %d < wheel_level %d, clamping gear_level up", p.GearLevel, p.WheelLevel)
		p.GearLevel = p.WheelLevel
	}
	if p.SievingBoundMultiplier <= 0 {
		log.Printf("findafactor: sieving_bound_multiplier %v <= 0, clamping to 1.0", p.SievingBoundMultiplier)
		p.SievingBoundMultiplier = 1.0
	}
	if p.SmoothnessBoundMultiplier <= 0 {
		log.Printf("findafactor: smoothness_bound_multiplier %v <= 0, clamping to 1.0", p.SmoothnessBoundMultiplier)
		p.SmoothnessBoundMultiplier = 1.0
	}
	if p.GaussianEliminationOffset < 0 {
		log.Printf("findafactor: gaussian_elimination_row_offset %d < 0, clamping to 0", p.GaussianEliminationOffset)
		p.GaussianEliminationOffset = 0
	}
}
