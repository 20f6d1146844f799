package output

// DefaultAssumptions lists the pricing rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Offer price: 80% of the assessed market value",
	"Lump sum share: 10% at slider 0 up to 40% at slider 100",
	"Lump sum rounded to the nearest €1,000",
	"Monthly payment rounded to the nearest €50 over the full contract duration",
	"Monthly payments are sized from the unrounded lump sum",
}
