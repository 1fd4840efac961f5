package paymentdomain

import "github.com/shopspring/decimal"

// minorUnitExponents lists the ISO 4217 currencies whose minor-unit exponent
// is not the usual 2.
var minorUnitExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0,
	"KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0,
	"VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// MinorUnitExponent returns the ISO 4217 minor-unit exponent for a currency
// code: 100 minor units per major unit means an exponent of 2.
func MinorUnitExponent(currency string) int32 {
	if exp, ok := minorUnitExponents[currency]; ok {
		return exp
	}
	return 2
}

// AmountDecimal returns the payment amount in major currency units.
func (p *Payment) AmountDecimal() decimal.Decimal {
	return decimal.New(p.Amount, -MinorUnitExponent(p.Currency))
}

// AmountDecimal returns the refund amount in major currency units.
func (r *Refund) AmountDecimal() decimal.Decimal {
	return decimal.New(r.Amount, -MinorUnitExponent(r.Currency))
}
