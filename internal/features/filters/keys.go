package filters

// Filter keys as used in saved state and menu callbacks.
const (
	KeyFdv        = "fdv"
	KeyLiquidity  = "liquidity"
	KeyVolumeBuy  = "volumeBuy"
	KeyVolumeSell = "volumeSell"
	KeyPrice      = "price"
	KeyVolume     = "volume"
)

// NumericKeys lists every numeric filter in menu order.
var NumericKeys = []string{KeyFdv, KeyLiquidity, KeyVolumeBuy, KeyVolumeSell}

// DisplayName maps a filter key to its user-facing label.
func DisplayName(key string) string {
	switch key {
	case KeyFdv:
		return "Market Cap"
	case KeyLiquidity:
		return "Liquidity"
	case KeyVolumeBuy:
		return "Volume Buy"
	case KeyVolumeSell:
		return "Volume Sell"
	case KeyPrice:
		return "Price"
	case KeyVolume:
		return "Volume"
	}
	return key
}

// Get returns the constraint stored under key, nil when unset or unknown.
func (s *Set) Get(key string) *Constraint {
	switch key {
	case KeyFdv:
		return s.Fdv
	case KeyLiquidity:
		return s.Liquidity
	case KeyVolumeBuy:
		return s.VolumeBuy
	case KeyVolumeSell:
		return s.VolumeSell
	case KeyPrice:
		return s.Price
	case KeyVolume:
		return s.Volume
	}
	return nil
}

// SetConstraint stores c under key. It reports whether the key is known;
// an unknown key leaves the set untouched.
func (s *Set) SetConstraint(key string, c *Constraint) bool {
	switch key {
	case KeyFdv:
		s.Fdv = c
	case KeyLiquidity:
		s.Liquidity = c
	case KeyVolumeBuy:
		s.VolumeBuy = c
	case KeyVolumeSell:
		s.VolumeSell = c
	case KeyPrice:
		s.Price = c
	case KeyVolume:
		s.Volume = c
	default:
		return false
	}
	return true
}
