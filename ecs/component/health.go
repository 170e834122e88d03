package component

type Health struct {
	Current float64
	Max     float64
}

var HealthComponent = NewComponent[Health]()

// Damage subtracts amount and reports whether this call brought health to zero.
func (h *Health) Damage(amount float64) bool {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

func (h *Health) Dead() bool {
	return h != nil && h.Current <= 0
}
