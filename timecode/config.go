package timecode

/*------------------------------------------------------------------
 *
 * Purpose:	Load operator-supplied timecode variant definitions from
 *		a YAML file: a compile-time table that an operator can
 *		extend or override at deploy time without recompiling.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	overrideMu sync.RWMutex
	overrides  = map[string]*TimecodeDef{}
)

// variantFile is the on-disk shape of a variant overrides file.
type variantFile struct {
	Variants []variantEntry `yaml:"variants"`
}

type variantEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Bits        uint   `yaml:"bits"`
	Polarity    string `yaml:"polarity"` // "pos" or "neg"
	Resolution  uint32 `yaml:"resolution"`
	Seed        uint32 `yaml:"seed"`
	Taps        uint32 `yaml:"taps"`
	Length      int    `yaml:"length"`
	Safe        int    `yaml:"safe"`
}

// LoadVariantConfig reads a YAML file of custom TimecodeDefs (for a
// pressing not in the compile-time registry) and installs them as
// overrides visible to BuildLookup and KnownVariants. A variant with
// the same name as a compile-time one takes priority over it.
func LoadVariantConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("timecode: read variant config %s: %w", path, err)
	}

	var vf variantFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return fmt.Errorf("timecode: parse variant config %s: %w", path, err)
	}

	loaded := make(map[string]*TimecodeDef, len(vf.Variants))
	for _, e := range vf.Variants {
		if e.Name == "" {
			return fmt.Errorf("timecode: variant config %s: entry missing name", path)
		}
		if e.Bits == 0 || e.Bits > 31 {
			return fmt.Errorf("timecode: variant config %s: variant %q has invalid bits %d", path, e.Name, e.Bits)
		}

		pol := PolarityPositive
		switch e.Polarity {
		case "", "pos", "POS":
			pol = PolarityPositive
		case "neg", "NEG":
			pol = PolarityNegative
		default:
			return fmt.Errorf("timecode: variant config %s: variant %q has unknown polarity %q", path, e.Name, e.Polarity)
		}

		loaded[e.Name] = &TimecodeDef{
			Name:        e.Name,
			Description: e.Description,
			Bits:        e.Bits,
			Polarity:    pol,
			Resolution:  e.Resolution,
			Seed:        e.Seed,
			Taps:        e.Taps,
			Length:      e.Length,
			Safe:        e.Safe,
		}
	}

	overrideMu.Lock()
	for name, d := range loaded {
		overrides[name] = d
	}
	overrideMu.Unlock()

	return nil
}

// ClearVariantConfig removes every operator-supplied override,
// restoring KnownVariants/BuildLookup to the compile-time registry
// only. Primarily useful for tests.
func ClearVariantConfig() {
	overrideMu.Lock()
	overrides = map[string]*TimecodeDef{}
	overrideMu.Unlock()
}
