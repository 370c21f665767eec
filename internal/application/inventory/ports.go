package inventory

// MovementObserver recibe cada movimiento confirmado (métricas).
type MovementObserver interface {
	RecordMovement(movementType string)
}

type nopObserver struct{}

func (nopObserver) RecordMovement(string) {}
