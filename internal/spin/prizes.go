package spin

// PrizeType groups prizes for reporting
type PrizeType string

const (
	PrizeDiscount PrizeType = "discount"
	PrizeCookie   PrizeType = "cookie"
)

// TryAgainLabel is the no-op sentinel: it consumes a spin but is never
// logged as a reward.
const TryAgainLabel = "Try Again"

// Prize is one wedge of the wheel
type Prize struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Type  PrizeType `json:"type"`
	Value string    `json:"value,omitempty"`
}

// Prizes is the static wheel. Labels may carry "<br/>" line breaks from
// the wheel artwork; renderers convert them before display.
var Prizes = []Prize{
	{ID: "d5", Label: "5% Off", Type: PrizeDiscount, Value: "5%"},
	{ID: "d5n", Label: "5% Off <br/> for Next order", Type: PrizeDiscount, Value: "5%"},
	{ID: "cookie1", Label: "Free Cookie 400ml", Type: PrizeCookie, Value: "Any 400ml"},
	{ID: "brownies", Label: "Brownies Slice Mini", Type: PrizeCookie, Value: "Brownies Slice Mini"},
	{ID: "d10n", Label: "10% Off <br/>for Next order", Type: PrizeDiscount, Value: "10%"},
	{ID: "ongkir", Label: "Gratis Ongkir", Type: PrizeDiscount, Value: "Gratis Ongkir"},
}
