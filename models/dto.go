package models

// StoredFile is an upload already written to the media store.
type StoredFile struct {
	Field      string
	StoredName string
}

// Submission is a parsed multipart product form.
type Submission struct {
	Fields map[string][]string
	Files  []StoredFile
}

// Value returns the first value for a field and whether it was present at all.
func (s *Submission) Value(name string) (string, bool) {
	vals, ok := s.Fields[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// StoredNames lists every stored file name in arrival order.
func (s *Submission) StoredNames() []string {
	names := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		names = append(names, f.StoredName)
	}
	return names
}

// VariantInput is one validated, coerced row of the submitted variants array.
type VariantInput struct {
	Weight       string `validate:"required"`
	Price        float64
	SalePrice    float64
	OfferPercent float64
	TaxPercent   float64
	TaxAmount    float64
	Stock        int
}

// ProductEvent is handed to the notifier after a successful mutation.
type ProductEvent struct {
	Action    string
	ProductID int
	Title     string
	Category  string
	Status    ProductStatus
	Units     string
}

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)
