package models

import (
	"encoding/json"
	"time"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "Active"
	StatusDisabled ProductStatus = "Disabled"
)

func (s ProductStatus) Valid() bool {
	return s == StatusActive || s == StatusDisabled
}

// ImageSlotCount is fixed by the products table (image1..image6).
const ImageSlotCount = 6

// SlotLabels maps an image slot index to its label. Index i is label "image<i+1>".
var SlotLabels = [ImageSlotCount]string{"image1", "image2", "image3", "image4", "image5", "image6"}

const VideoLabel = "video"

// SlotState is the positional media of a product. A nil entry is an empty slot.
// Slots are never reordered.
type SlotState struct {
	Images [ImageSlotCount]*string
	Video  *string
}

// Files returns every non-empty reference, images first, then the video.
func (s SlotState) Files() []string {
	files := []string{}
	for _, img := range s.Images {
		if img != nil {
			files = append(files, *img)
		}
	}
	if s.Video != nil {
		files = append(files, *s.Video)
	}
	return files
}

type Product struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	HSN         string        `json:"hsn"`
	Status      ProductStatus `json:"status"`
	Units       string        `json:"units"`
	Slots       SlotState     `json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	Variants    []Variant     `json:"variants"`
}

// MarshalJSON flattens the slot state into image1..image6 and video columns.
func (p Product) MarshalJSON() ([]byte, error) {
	type header Product
	h := header(p)
	if h.Variants == nil {
		h.Variants = []Variant{}
	}
	return json.Marshal(struct {
		header
		Image1 *string `json:"image1"`
		Image2 *string `json:"image2"`
		Image3 *string `json:"image3"`
		Image4 *string `json:"image4"`
		Image5 *string `json:"image5"`
		Image6 *string `json:"image6"`
		Video  *string `json:"video"`
	}{
		header: h,
		Image1: p.Slots.Images[0],
		Image2: p.Slots.Images[1],
		Image3: p.Slots.Images[2],
		Image4: p.Slots.Images[3],
		Image5: p.Slots.Images[4],
		Image6: p.Slots.Images[5],
		Video:  p.Slots.Video,
	})
}

type Variant struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"product_id"`
	Weight       string  `json:"weight"`
	Price        float64 `json:"price"`
	SalePrice    float64 `json:"sale_price"`
	OfferPercent float64 `json:"offer_percent"`
	TaxPercent   float64 `json:"tax_percent"`
	TaxAmount    float64 `json:"tax_amount"`
	Stock        int     `json:"stock"`
}

// ProductHeader holds the scalar columns a caller may set on create or update.
type ProductHeader struct {
	Title       string `validate:"required"`
	Description string
	Category    string
	HSN         string
	Status      ProductStatus `validate:"required,oneof=Active Disabled"`
	Units       string
}
