// Package catalog holds the display data the flows offer to users:
// hospitals, medicines, specialists, time slots, candidate pools and
// progress texts. It is loaded from YAML so it can be versioned and
// replaced in tests without touching flow wiring.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// MinutesPerDay bounds every pickup delay
const MinutesPerDay = 1440

// Hospital is a cab destination
type Hospital struct {
	Name string `yaml:"name"`
	Area string `yaml:"area"`
}

// Label returns the button text for the hospital
func (h Hospital) Label() string {
	return "🏥 " + h.Name
}

// Delay is a fixed "schedule for later" option
type Delay struct {
	Label   string `yaml:"label"`
	Minutes int    `yaml:"minutes"`
}

// Driver is a cab candidate
type Driver struct {
	Name       string `yaml:"name"`
	Vehicle    string `yaml:"vehicle"`
	Plate      string `yaml:"plate"`
	Phone      string `yaml:"phone"`
	ETAMinutes int    `yaml:"eta_minutes"`
	Fare       int    `yaml:"fare"`
}

// Variant is one synthesized search result shape
type Variant struct {
	Strength string `yaml:"strength"`
	Price    int    `yaml:"price"`
}

// Medicines holds medicine display data
type Medicines struct {
	Popular  []string  `yaml:"popular"`
	Variants []Variant `yaml:"variants"`
}

// Pharmacy is a medicine order candidate
type Pharmacy struct {
	Name string `yaml:"name"`
	Area string `yaml:"area"`
}

// Specialist maps a specialty label to its doctors
type Specialist struct {
	Label   string   `yaml:"label"`
	Doctors []string `yaml:"doctors"`
}

// Step is a progress message shown while a booking is simulated
type Step struct {
	Text    string `yaml:"text"`
	DelayMS int    `yaml:"delay_ms"`
}

// Delay returns the pause after the step
func (s Step) Delay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// Catalog is the full display data set
type Catalog struct {
	Version     string            `yaml:"version"`
	City        string            `yaml:"city"`
	Hospitals   []Hospital        `yaml:"hospitals"`
	Delays      []Delay           `yaml:"delays"`
	Drivers     []Driver          `yaml:"drivers"`
	Medicines   Medicines         `yaml:"medicines"`
	Pharmacies  []Pharmacy        `yaml:"pharmacies"`
	Specialists []Specialist      `yaml:"specialists"`
	TimeSlots   []string          `yaml:"time_slots"`
	Progress    map[string][]Step `yaml:"progress"`
}

// SearchResults is the number of synthesized results per medicine search
const SearchResults = 3

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every flow has the data it needs
func (c *Catalog) Validate() error {
	if len(c.Hospitals) == 0 {
		return fmt.Errorf("catalog: at least one hospital is required")
	}
	for _, d := range c.Delays {
		if d.Label == "" {
			return fmt.Errorf("catalog: delay label is required")
		}
		if d.Minutes < 1 || d.Minutes > MinutesPerDay {
			return fmt.Errorf("catalog: delay %q must be between 1 and %d minutes", d.Label, MinutesPerDay)
		}
	}
	if len(c.Drivers) == 0 {
		return fmt.Errorf("catalog: at least one driver is required")
	}
	if len(c.Pharmacies) == 0 {
		return fmt.Errorf("catalog: at least one pharmacy is required")
	}
	if len(c.Medicines.Variants) < SearchResults {
		return fmt.Errorf("catalog: at least %d medicine variants are required", SearchResults)
	}
	seen := make(map[string]bool)
	for _, v := range c.Medicines.Variants[:SearchResults] {
		if seen[v.Strength] {
			return fmt.Errorf("catalog: duplicate medicine strength %q", v.Strength)
		}
		seen[v.Strength] = true
	}
	if len(c.Specialists) == 0 {
		return fmt.Errorf("catalog: at least one specialist is required")
	}
	for _, s := range c.Specialists {
		if len(s.Doctors) == 0 {
			return fmt.Errorf("catalog: specialist %q has no doctors", s.Label)
		}
	}
	if len(c.TimeSlots) == 0 {
		return fmt.Errorf("catalog: at least one time slot is required")
	}
	for _, kind := range []string{"cab", "pharmacy", "appointment"} {
		if len(c.Progress[kind]) == 0 {
			return fmt.Errorf("catalog: progress steps for %q are required", kind)
		}
	}
	return nil
}

// HospitalByLabel finds a hospital by its button text
func (c *Catalog) HospitalByLabel(label string) (Hospital, bool) {
	for _, h := range c.Hospitals {
		if MatchLabel(label, h.Label()) {
			return h, true
		}
	}
	return Hospital{}, false
}

// DelayByLabel finds a fixed delay option by its button text
func (c *Catalog) DelayByLabel(label string) (Delay, bool) {
	for _, d := range c.Delays {
		if MatchLabel(label, d.Label) {
			return d, true
		}
	}
	return Delay{}, false
}

// Specialist finds a specialist by label
func (c *Catalog) Specialist(label string) (Specialist, bool) {
	for _, s := range c.Specialists {
		if MatchLabel(label, s.Label) {
			return s, true
		}
	}
	return Specialist{}, false
}

// Doctor finds a doctor listed under the given specialist only
func (c *Catalog) Doctor(specialist, input string) (string, bool) {
	s, ok := c.Specialist(specialist)
	if !ok {
		return "", false
	}
	return findLabel(s.Doctors, input)
}

// TimeSlot finds an offered slot by its button text
func (c *Catalog) TimeSlot(input string) (string, bool) {
	return findLabel(c.TimeSlots, input)
}

// SearchVariants returns the variants used for synthesized search results
func (c *Catalog) SearchVariants() []Variant {
	return c.Medicines.Variants[:SearchResults]
}
