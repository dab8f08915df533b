package services

import (
	"encoding/json"
	"strings"

	"vitalimes-backend/models"
)

type SlotResolution struct {
	Next models.SlotState
	// Deletions lists displaced files, each at most once, in the order they were displaced.
	Deletions []string
}

type SlotResolver struct {
	cfg UploadConfig
}

func NewSlotResolver(cfg UploadConfig) *SlotResolver {
	return &SlotResolver{cfg: cfg}
}

// Resolve applies removal directives first and uploads second. A slot that is
// cleared and re-filled in one call deletes its original occupant exactly once.
// Uploads under a field that is no slot are reported as deletions.
func (r *SlotResolver) Resolve(current models.SlotState, removed []string, uploads []models.StoredFile) SlotResolution {
	next := current
	res := SlotResolution{Deletions: []string{}}
	seen := map[string]bool{}

	schedule := func(name *string) {
		if name == nil || seen[*name] {
			return
		}
		seen[*name] = true
		res.Deletions = append(res.Deletions, *name)
	}

	for _, label := range removed {
		label = strings.TrimSpace(label)
		if idx, ok := r.cfg.slotIndex(label); ok {
			schedule(next.Images[idx])
			next.Images[idx] = nil
		} else if label == r.cfg.VideoField {
			schedule(next.Video)
			next.Video = nil
		}
	}

	for _, f := range uploads {
		stored := f.StoredName
		if idx, ok := r.cfg.slotIndex(f.Field); ok {
			schedule(next.Images[idx])
			next.Images[idx] = &stored
		} else if f.Field == r.cfg.VideoField {
			schedule(next.Video)
			next.Video = &stored
		} else {
			schedule(&stored)
		}
	}

	res.Next = next
	return res
}

// RemovalDirectives reads the removal field either as repeated values or as a
// single JSON array string, e.g. `["image1","image3"]`.
func (r *SlotResolver) RemovalDirectives(sub *models.Submission) []string {
	raw := append([]string{}, sub.Fields[r.cfg.RemovedField]...)
	raw = append(raw, sub.Fields[r.cfg.RemovedField+"[]"]...)

	labels := []string{}
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var list []string
			if err := json.Unmarshal([]byte(v), &list); err == nil {
				labels = append(labels, list...)
			}
			continue
		}
		if v != "" {
			labels = append(labels, v)
		}
	}
	return labels
}

// DeleteCandidates enumerates the six image slots and the video slot, nil for
// an empty slot.
func DeleteCandidates(slots models.SlotState) []*string {
	out := make([]*string, 0, models.ImageSlotCount+1)
	for _, img := range slots.Images {
		out = append(out, img)
	}
	return append(out, slots.Video)
}
