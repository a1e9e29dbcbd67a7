package pricing

// DocumentObserver registra métricas de documentos cotizados.
type DocumentObserver interface {
	ObserveDocument(strict bool)
}

type nopObserver struct{}

func (nopObserver) ObserveDocument(bool) {}
