package product

// Patch is a sparse update of a product. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Handle      *string
	Description *string
	Vendor      *string
	ProductType *string
	Tags        []string
	Images      []string
	Status      *Status

	hasTags   bool
	hasImages bool
}

// ParsePatch picks the recognised, correctly typed fields out of a decoded
// JSON object. Unknown keys and values of the wrong type are dropped.
func ParsePatch(raw map[string]interface{}) Patch {
	var p Patch

	p.Title = stringField(raw, "title")
	p.Handle = stringField(raw, "handle")
	p.Description = stringField(raw, "description")
	p.Vendor = stringField(raw, "vendor")
	p.ProductType = stringField(raw, "productType")

	if tags, ok := raw["tags"].([]interface{}); ok {
		p.Tags, p.hasTags = onlyStrings(tags), true
	}
	if images, ok := raw["images"].([]interface{}); ok {
		p.Images, p.hasImages = onlyStrings(images), true
	}

	if s := stringField(raw, "status"); s != nil {
		if status := Status(*s); status.IsValid() {
			p.Status = &status
		}
	}

	return p
}

// Apply writes the patch onto p.
func (patch Patch) Apply(p *Product) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Handle != nil {
		p.Handle = *patch.Handle
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Vendor != nil {
		p.Vendor = *patch.Vendor
	}
	if patch.ProductType != nil {
		p.ProductType = *patch.ProductType
	}
	if patch.hasTags {
		p.Tags = patch.Tags
	}
	if patch.hasImages {
		p.Images = patch.Images
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
}

func stringField(raw map[string]interface{}, key string) *string {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func onlyStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
