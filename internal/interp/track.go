package interp

// Key is a value at a specific time offset
type Key struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// Track interpolates between keys with an easing applied per segment.
// Keys must be sorted by time.
type Track struct {
	Keys   []Key
	Easing Easing
}

// At calculates the track value at a given time
func (tr Track) At(t float64) float64 {
	keys := tr.Keys
	if len(keys) == 0 {
		return 0
	}

	if t <= keys[0].Time {
		return keys[0].Value
	}
	if t >= keys[len(keys)-1].Time {
		return keys[len(keys)-1].Value
	}

	for i := 0; i < len(keys)-1; i++ {
		prev, next := keys[i], keys[i+1]
		if t >= prev.Time && t < next.Time {
			span := next.Time - prev.Time
			if span <= 0 {
				return next.Value
			}
			return Between(prev.Value, next.Value, (t-prev.Time)/span, tr.Easing)
		}
	}

	return keys[len(keys)-1].Value
}
