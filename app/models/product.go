package models

// ProductPage is the catalog listing. Count is always the size of the whole
// collection, never of the returned window.
type ProductPage struct {
	Count    int64      `json:"count"`
	Products []Document `json:"products"`
}
