package valueobjects

// Decade is one of the eight fixed timeline period labels.
type Decade string

const (
	Decade1950s Decade = "1950s"
	Decade1960s Decade = "1960s"
	Decade1970s Decade = "1970s"
	Decade1980s Decade = "1980s"
	Decade1990s Decade = "1990s"
	Decade2000s Decade = "2000s"
	Decade2010s Decade = "2010s"
	Decade2020s Decade = "2020s"
)

// Decades lists every timeline period in display order.
var Decades = []Decade{
	Decade1950s,
	Decade1960s,
	Decade1970s,
	Decade1980s,
	Decade1990s,
	Decade2000s,
	Decade2010s,
	Decade2020s,
}

// IsValidDecade reports whether label is one of the eight period labels.
func IsValidDecade(label string) bool {
	for _, d := range Decades {
		if string(d) == label {
			return true
		}
	}
	return false
}

func (d Decade) String() string {
	return string(d)
}
