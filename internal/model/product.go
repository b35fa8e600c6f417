package model

// Product is one purchasable catalog entry. Name is the lookup key and is
// unique within the catalog; Price is the display string shown to the
// customer (e.g. "৳65,000"), not a numeric amount.
type Product struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// DefaultProducts is the catalog seeded on first start when the products
// file is empty.
func DefaultProducts() []Product {
	return []Product{
		{Category: "ল্যাপটপ", Name: "HP Pavilion 15", Price: "৳65,000", Stock: 5, Description: "Intel i5 • 8/512"},
		{Category: "ল্যাপটপ", Name: "Dell Inspiron 15", Price: "৳65,000", Stock: 9, Description: "i5 • 8/512 • FHD"},
		{Category: "মোবাইল", Name: "Redmi Note 13", Price: "৳23,999", Stock: 8, Description: "6/128 • 120Hz AMOLED"},
		{Category: "অ্যাক্সেসরিজ", Name: "Logitech M331 Silent", Price: "৳1,799", Stock: 15, Description: "Silent wireless mouse"},
	}
}
