// Package sponsor loads the tiered sponsor configuration.
package sponsor

import (
	"encoding/json"
	"fmt"
	"os"
)

type Sponsor struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// Tier is either absent or a non-empty ordered list of sponsors.
// Absent covers a missing file, a missing key and a configured-but-empty
// list; the distinction from an empty slice matters because an absent tier
// hides its whole section on the page.
type Tier struct {
	sponsors []Sponsor
}

// Absent is the no-sponsors sentinel.
var Absent = Tier{}

func NewTier(sponsors []Sponsor) Tier {
	if len(sponsors) == 0 {
		return Absent
	}
	return Tier{sponsors: sponsors}
}

func (t Tier) Present() bool {
	return len(t.sponsors) > 0
}

func (t Tier) Sponsors() []Sponsor {
	return t.sponsors
}

type sponsorsFile struct {
	Gold   []Sponsor `json:"gold_sponsors"`
	Silver []Sponsor `json:"silver_sponsors"`
}

// Load reads the sponsor file. A missing file means no sponsors at all and
// is not an error; malformed JSON is.
func Load(path string) (gold, silver Tier, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Absent, Absent, nil
		}
		return Absent, Absent, fmt.Errorf("failed to read sponsors file: %w", err)
	}

	var f sponsorsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Absent, Absent, fmt.Errorf("failed to parse sponsors file: %w", err)
	}

	return NewTier(f.Gold), NewTier(f.Silver), nil
}
