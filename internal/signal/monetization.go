package signal

import "github.com/launchpick/launchpick/internal/model"

// MonetizationSource scores monetization potential from willingness-to-pay
// phrase density, explicit price mentions, and B2B/B2C weighting.
type MonetizationSource struct{}

// Name identifies the dimension this source feeds.
func (MonetizationSource) Name() string { return "monetization_potential" }

// Score treats explicit price mentions as the strongest signal, then
// willingness-to-pay phrasing. Business-audience posts get a multiplier
// because B2B buyers convert at higher price points.
func (MonetizationSource) Score(sub *model.Submission, _ *model.Candidate) float64 {
	text := sub.Text()

	payHits := countPhrases(text, payPhrases)
	priceHits := len(priceRe.FindAllString(text, -1))

	base := float64(payHits)*16 + float64(priceHits)*12

	b2b := countPhrases(text, b2bMarkers)
	b2c := countPhrases(text, b2cMarkers)
	switch {
	case b2b > b2c:
		base *= 1.2
	case b2c > b2b:
		base *= 0.9
	}

	return clamp(base)
}
