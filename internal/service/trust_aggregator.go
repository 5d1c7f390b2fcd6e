package service

import (
	"dream-match/internal/domain"
)

// TrustAggregator pliega señales de confianza independientes y ruidosas de
// multiples servicios en un solo valor compuesto ponderado por confiabilidad.
// Sin estado entre llamadas: las señales llegan por request.
type TrustAggregator struct{}

// Rango de clipping del z-score antes de reescalar a [0,1].
const zScoreClip = 3.0

// ComputeCrossServiceTrust normaliza cada señal contra su propia media/desvio
// historico (z-score clipeado a [-3,3], reescalado a [0,1]) y promedia
// ponderando por confiabilidad. Confiabilidades todas en 0 caen a media simple
// en vez de dividir por cero. Sin señales devuelve 0.
func (TrustAggregator) ComputeCrossServiceTrust(signals []domain.ServiceTrustSignal) float64 {
	if len(signals) == 0 {
		return 0
	}

	var weightedSum, weightTotal, plainSum float64
	for _, sig := range signals {
		normalized := normalizeSignal(sig)
		reliability := domain.Clamp01(sig.Reliability)
		weightedSum += normalized * reliability
		weightTotal += reliability
		plainSum += normalized
	}
	if weightTotal == 0 {
		return domain.Clamp01(plainSum / float64(len(signals)))
	}
	return domain.Clamp01(weightedSum / weightTotal)
}

// ToTrustVector proyecta el composite mas los campos auxiliares en la faceta
// de confianza que consume el DNA scorer. Reshape puro, sin computo nuevo.
func (TrustAggregator) ToTrustVector(composite float64, extras domain.TrustFacet) domain.TrustFacet {
	return domain.TrustFacet{
		OfflineReputation:  domain.Clamp01(extras.OfflineReputation),
		Responsiveness:     domain.Clamp01(extras.Responsiveness),
		DeliveryCompliance: domain.Clamp01(extras.DeliveryCompliance),
		Composite:          domain.Clamp01(composite),
	}
}

// normalizeSignal lleva una señal de escala nativa arbitraria a [0,1].
// Desvio cero o negativo deja la señal en el centro de la escala.
func normalizeSignal(sig domain.ServiceTrustSignal) float64 {
	if sig.StdDev <= 0 {
		return 0.5
	}
	z := (sig.Score - sig.Mean) / sig.StdDev
	if z > zScoreClip {
		z = zScoreClip
	}
	if z < -zScoreClip {
		z = -zScoreClip
	}
	return (z + zScoreClip) / (2 * zScoreClip)
}
