package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoQuote signals that the carrier could not quote the package.
var ErrNoQuote = errors.New("no freight quote")

type FreightRequest struct {
	OriginPostalCode      string
	DestinationPostalCode string
	Weight                decimal.Decimal
	Width                 decimal.Decimal
	Height                decimal.Decimal
	Length                decimal.Decimal
	DeclaredValue         decimal.Decimal
	ServiceCode           string
}

type FreightQuote struct {
	Cost         decimal.Decimal
	LeadTimeDays int
	Method       string
}

func (q FreightQuote) Freight() Freight {
	return Freight{
		Cost:         q.Cost,
		Method:       q.Method,
		LeadTimeDays: q.LeadTimeDays,
	}
}

// carrier minimums, in centimeters
var (
	minPackageHeight = decimal.NewFromInt(2)
	minPackageWidth  = decimal.NewFromInt(11)
	minPackageLength = decimal.NewFromInt(16)
)

// NewFreightRequest builds a carrier request from package metrics,
// raising dimensions to the carrier minimums.
func NewFreightRequest(origin, destination, serviceCode string, m PackageMetrics) FreightRequest {
	return FreightRequest{
		OriginPostalCode:      origin,
		DestinationPostalCode: destination,
		Weight:                m.Weight,
		Width:                 decimal.Max(m.Width, minPackageWidth),
		Height:                decimal.Max(m.Height, minPackageHeight),
		Length:                decimal.Max(m.Length, minPackageLength),
		DeclaredValue:         m.Price,
		ServiceCode:           serviceCode,
	}
}
