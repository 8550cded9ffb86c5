package config

import (
	"flag"
	"strconv"
)

// seedFlag remembers whether -seed was given so that -seed 0 still
// overrides a seed from the config file.
type seedFlag struct {
	value int64
	set   bool
}

func (s *seedFlag) String() string {
	return strconv.FormatInt(s.value, 10)
}

func (s *seedFlag) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	s.value, s.set = n, true
	return nil
}

// spacingFlag remembers whether -spacing was given so that -spacing 0
// stacks every crab at the origin.
type spacingFlag struct {
	value float32
	set   bool
}

func (s *spacingFlag) String() string {
	return strconv.FormatFloat(float64(s.value), 'g', -1, 32)
}

func (s *spacingFlag) Set(v string) error {
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return err
	}
	s.value, s.set = float32(f), true
	return nil
}

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSeed      = &seedFlag{}
	flagCount     = flag.Int("count", -1, "Number of crabs")
	flagSpacing   = &spacingFlag{}
	flagCurveRes  = flag.Int("curve-res", 0, "Curve resolution (3-64)")
	flagRadialRes = flag.Int("radial-res", 0, "Radial resolution (3-64)")
	flagOut       = flag.String("out", "", "Output directory")
	flagPreview   = flag.Bool("preview", true, "Render a preview image")
	flagWorkers   = flag.Int("workers", 0, "Parallel creature workers")
)

func init() {
	flag.Var(flagSeed, "seed", "Base seed")
	flag.Var(flagSpacing, "spacing", "Distance between crabs")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagSeed.set {
		cfg.Generation.Seed = flagSeed.value
	}
	if *flagCount >= 0 {
		cfg.Generation.Count = *flagCount
	}
	if flagSpacing.set {
		cfg.Generation.Spacing = flagSpacing.value
	}
	if *flagCurveRes > 0 {
		cfg.Generation.Resolution.Curve = *flagCurveRes
	}
	if *flagRadialRes > 0 {
		cfg.Generation.Resolution.Radial = *flagRadialRes
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if !*flagPreview {
		cfg.Output.Preview = false
	}
	if *flagWorkers > 0 {
		cfg.Generation.Workers = *flagWorkers
	}
}
