package scanner

import "fmt"

type Verdict int

const (
	NoScraper Verdict = iota
	Placeholder
	Trivial
	Active
)

var Verdicts = []Verdict{NoScraper, Placeholder, Trivial, Active}

func (v Verdict) String() string {
	switch v {
	case NoScraper:
		return "no_scraper"
	case Placeholder:
		return "placeholder"
	case Trivial:
		return "trivial"
	case Active:
		return "active"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Valid reports whether v is one of Verdicts.
func (v Verdict) Valid() bool {
	return v >= NoScraper && v <= Active
}

func ParseVerdict(s string) (Verdict, error) {
	for _, v := range Verdicts {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown verdict %q", s)
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
