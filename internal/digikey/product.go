package digikey

// Product is the subset of a Digikey product-details API response that the
// component builders consume. Field names mirror the wire format.
type Product struct {
	DigiKeyPartNumber      string      `json:"DigiKeyPartNumber"`
	ManufacturerPartNumber string      `json:"ManufacturerPartNumber"`
	Manufacturer           ValueField  `json:"Manufacturer"`
	PrimaryDatasheet       string      `json:"PrimaryDatasheet"`
	LimitedTaxonomy        Taxonomy    `json:"LimitedTaxonomy"`
	Family                 ValueField  `json:"Family"`
	Series                 ValueField  `json:"Series"`
	Parameters             []Parameter `json:"Parameters"`

	// Raw holds the undecoded response body for --show-api-response.
	Raw []byte `json:"-"`
}

// ValueField wraps the {"Value": ...} objects the Digikey API uses for
// scalar-ish fields.
type ValueField struct {
	Value string `json:"Value"`
}

// Taxonomy is the product category tree. Only the top level and its first
// child are ever needed to classify a part.
type Taxonomy struct {
	Value    string     `json:"Value"`
	Children []Taxonomy `json:"Children"`
}

// Parameter is a single name/value entry of the part's parametric data.
type Parameter struct {
	Parameter string `json:"Parameter"`
	Value     string `json:"Value"`
}

// Category returns the top-level taxonomy value, e.g. "Resistors".
func (p *Product) Category() string {
	return p.LimitedTaxonomy.Value
}

// Subcategory returns the first child taxonomy value, or "" when the
// taxonomy has no children.
func (p *Product) Subcategory() string {
	if len(p.LimitedTaxonomy.Children) == 0 {
		return ""
	}
	return p.LimitedTaxonomy.Children[0].Value
}

// Param returns the value of the named parametric entry, or "" when the
// part does not carry it.
func (p *Product) Param(name string) string {
	for _, param := range p.Parameters {
		if param.Parameter == name {
			return param.Value
		}
	}
	return ""
}

// HasParam reports whether the named parametric entry is present.
func (p *Product) HasParam(name string) bool {
	for _, param := range p.Parameters {
		if param.Parameter == name {
			return true
		}
	}
	return false
}
