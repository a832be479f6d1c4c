package scoring

import "selectly/internal/domain"

// Hand-tuned scoring policy. The reference points reward prices below
// $4/meter and lead times below 20 days; both sub-scores go negative past
// their reference point. These values are fixed, not configuration.
const (
	priceReference = 4.0
	priceWeight    = 2.5

	leadTimeReference = 20.0
	leadTimeWeight    = 0.5

	qualityWeight       = 1.5
	reliabilityWeight   = 0.1
	financialWeight     = 1.2
	communicationWeight = 1.0
	pastPerfWeight      = 1.3

	complianceBonus = 5.0
)

// Score computes the weighted fitness score for one supplier. Pure and
// deterministic: identical records always score identically. Numeric
// fields go through the lenient-zero policy, so a malformed record scores
// low rather than failing.
func Score(s domain.Supplier) float64 {
	score := (priceReference - s.Float(domain.FieldPrice)) * priceWeight
	score += (leadTimeReference - float64(s.Int(domain.FieldLeadTime))) * leadTimeWeight
	score += float64(s.Int(domain.FieldQuality)) * qualityWeight
	score += float64(s.Int(domain.FieldReliability)) * reliabilityWeight
	score += float64(s.Int(domain.FieldFinancial)) * financialWeight
	score += float64(s.Int(domain.FieldCommunication)) * communicationWeight
	score += float64(s.Int(domain.FieldPastPerf)) * pastPerfWeight
	// Anything other than the literal "None" counts as compliant, including
	// an absent field.
	if s[domain.FieldCompliance] != domain.ComplianceNone {
		score += complianceBonus
	}
	return score
}
