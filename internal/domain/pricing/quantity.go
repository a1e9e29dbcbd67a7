package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// ValidateQuantity clasifica una cantidad contra los límites de la línea. Devuelve nil si no hay
// observación. Mínimo y máximo en cero se consideran no configurados; el disponible en cero sí cuenta.
// Solo clasifica: bloquear o no el guardado es decisión del llamador.
func ValidateQuantity(qty decimal.Decimal, limits entity.QuantityLimits) *entity.QuantityIssue {
	if lo := limits.MinOrderQty; lo != nil && lo.IsPositive() && qty.LessThan(*lo) {
		return &entity.QuantityIssue{
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("Below min (%s)", lo.String()),
		}
	}
	if hi := limits.MaxOrderQty; hi != nil && hi.IsPositive() && qty.GreaterThan(*hi) {
		return &entity.QuantityIssue{
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("Exceeds max (%s)", hi.String()),
		}
	}
	if avail := limits.AvailableQty; avail != nil && qty.GreaterThan(*avail) {
		return &entity.QuantityIssue{
			Severity: entity.SeverityWarning,
			Message:  fmt.Sprintf("Exceeds available (%s)", avail.String()),
		}
	}
	return nil
}
