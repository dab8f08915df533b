package services

import (
	"context"
	"errors"
	"testing"

	"vitalimes-backend/models"
)

func TestCreateOilScenario(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	sub := f.submission(map[string]string{
		"title":    "Oil",
		"variants": `[{"weight":"100g","price":"199"}]`,
	}, "image1")
	fileA := sub.Files[0].StoredName

	id, err := f.svc.CreateProduct(ctx, sub)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}

	p, err := f.svc.GetProduct(ctx, id)
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	if len(p.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(p.Variants))
	}
	v := p.Variants[0]
	if v.Stock != 0 || v.SalePrice != 0 || v.Price != 199 || v.Weight != "100g" {
		t.Fatalf("unexpected variant %+v", v)
	}
	if p.Slots.Images[0] == nil || *p.Slots.Images[0] != fileA {
		t.Fatalf("expected image1=%s, got %v", fileA, p.Slots.Images[0])
	}
	if p.Status != models.StatusActive {
		t.Fatalf("expected default status Active, got %q", p.Status)
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Action != models.EventCreated || f.notifier.events[0].ProductID != id {
		t.Fatalf("unexpected notifications %+v", f.notifier.events)
	}
	if len(f.media.deletes) != 0 {
		t.Fatalf("expected no deletions on create, got %v", f.media.deletes)
	}
}

func TestCreateMissingPriceWritesNothing(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		f := newFixture(atomic)
		sub := f.submission(map[string]string{
			"title":    "Oil",
			"variants": `[{"weight":"100g","price":"199"},{"weight":"1kg"}]`,
		}, "image1")
		stored := sub.Files[0].StoredName

		_, err := f.svc.CreateProduct(context.Background(), sub)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("atomic=%v: expected ValidationError, got %v", atomic, err)
		}
		if len(f.store.products) != 0 || f.store.variantRows() != 0 {
			t.Fatalf("atomic=%v: expected no rows, got %d products %d variants", atomic, len(f.store.products), f.store.variantRows())
		}
		if _, ok := f.media.files[stored]; ok {
			t.Fatalf("atomic=%v: expected rejected upload to be removed", atomic)
		}
		if len(f.notifier.events) != 0 {
			t.Fatalf("atomic=%v: expected no notification", atomic)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(true)

	cases := map[string]map[string]string{
		"missing title":  {"variants": `[]`},
		"blank title":    {"title": "  ", "variants": `[]`},
		"bad status":     {"title": "Oil", "status": "Archived", "variants": `[]`},
		"missing array":  {"title": "Oil"},
		"missing weight": {"title": "Oil", "variants": `[{"price":1}]`},
	}
	for name, fields := range cases {
		_, err := f.svc.CreateProduct(context.Background(), f.submission(fields))
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", name, err)
		}
	}
	if len(f.store.products) != 0 {
		t.Fatalf("expected no products, got %d", len(f.store.products))
	}
}

func seedProduct(t *testing.T, f *fixture) (int, *models.Product) {
	t.Helper()
	slots := models.SlotState{Video: f.media.put("video-0.mp4")}
	for i := range slots.Images {
		slots.Images[i] = f.media.put(models.SlotLabels[i] + "-0.jpg")
	}

	id, err := f.store.InsertHeader(context.Background(), models.ProductHeader{
		Title: "Ghee", Category: "Dairy", Status: models.StatusActive, Units: "jar",
	}, slots)
	if err != nil {
		t.Fatalf("InsertHeader returned error: %v", err)
	}
	err = f.store.ReplaceVariants(context.Background(), id, []models.Variant{
		{Weight: "250g", Price: 300, Stock: 4},
		{Weight: "500g", Price: 550, Stock: 2},
	})
	if err != nil {
		t.Fatalf("ReplaceVariants returned error: %v", err)
	}
	p, _ := f.store.GetByID(context.Background(), id)
	return id, p
}

func TestUpdateReplacesVariantSet(t *testing.T) {
	f := newFixture(true)
	id, _ := seedProduct(t, f)

	err := f.svc.UpdateProduct(context.Background(), id, f.submission(map[string]string{
		"variants": `[{"weight":"1kg","price":1000,"stock":1}]`,
	}))
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}

	p, _ := f.svc.GetProduct(context.Background(), id)
	if len(p.Variants) != 1 {
		t.Fatalf("expected exactly the submitted variant, got %+v", p.Variants)
	}
	v := p.Variants[0]
	if v.Weight != "1kg" || v.Price != 1000 || v.Stock != 1 {
		t.Fatalf("unexpected variant %+v", v)
	}
	if f.store.variantRows() != 1 {
		t.Fatalf("expected 1 variant row, got %d", f.store.variantRows())
	}
}

func TestUpdateKeepsAbsentFields(t *testing.T) {
	f := newFixture(true)
	id, _ := seedProduct(t, f)

	err := f.svc.UpdateProduct(context.Background(), id, f.submission(map[string]string{
		"title":    "Desi Ghee",
		"units":    "",
		"variants": `[]`,
	}))
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}

	p, _ := f.svc.GetProduct(context.Background(), id)
	if p.Title != "Desi Ghee" || p.Category != "Dairy" || p.Units != "" || p.Status != models.StatusActive {
		t.Fatalf("unexpected header %+v", p)
	}
	if len(p.Variants) != 0 {
		t.Fatalf("expected empty variant set, got %d", len(p.Variants))
	}
}

func TestUpdateSlotsAndReaping(t *testing.T) {
	f := newFixture(true)
	id, before := seedProduct(t, f)
	oldImage1 := *before.Slots.Images[0]
	oldImage3 := *before.Slots.Images[2]

	sub := f.submission(map[string]string{
		"removedImages": `["image1","image3"]`,
		"variants":      `[]`,
	}, "image1")
	newImage1 := sub.Files[0].StoredName

	if err := f.svc.UpdateProduct(context.Background(), id, sub); err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}

	p, _ := f.svc.GetProduct(context.Background(), id)
	if p.Slots.Images[0] == nil || *p.Slots.Images[0] != newImage1 {
		t.Fatalf("expected image1=%s, got %v", newImage1, p.Slots.Images[0])
	}
	if p.Slots.Images[2] != nil {
		t.Fatalf("expected image3 cleared, got %v", *p.Slots.Images[2])
	}
	if p.Slots.Images[1] == nil || p.Slots.Video == nil {
		t.Fatal("expected untouched slots to keep their files")
	}

	if len(f.media.deletes) != 2 || f.media.deletes[0] != oldImage1 || f.media.deletes[1] != oldImage3 {
		t.Fatalf("expected deletions [%s %s], got %v", oldImage1, oldImage3, f.media.deletes)
	}
	if f.cache.invalidated != 1 {
		t.Fatalf("expected cache invalidated once, got %d", f.cache.invalidated)
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Action != models.EventUpdated {
		t.Fatalf("unexpected notifications %+v", f.notifier.events)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	f := newFixture(true)
	sub := f.submission(map[string]string{"variants": `[]`}, "image2")
	stored := sub.Files[0].StoredName

	err := f.svc.UpdateProduct(context.Background(), 42, sub)
	if !errors.Is(err, models.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, ok := f.media.files[stored]; ok {
		t.Fatal("expected upload for missing product to be removed")
	}
}

func TestUpdateAtomicFailureRollsBack(t *testing.T) {
	f := newFixture(true)
	id, before := seedProduct(t, f)
	f.store.failReplace = errBoom

	sub := f.submission(map[string]string{"title": "Changed", "variants": `[{"weight":"1kg","price":1}]`}, "image2")
	stored := sub.Files[0].StoredName

	err := f.svc.UpdateProduct(context.Background(), id, sub)
	var se *models.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}

	p, _ := f.store.GetByID(context.Background(), id)
	if p.Title != before.Title || len(p.Variants) != 2 {
		t.Fatalf("expected unchanged product, got %+v", p)
	}
	if *p.Slots.Images[1] != *before.Slots.Images[1] {
		t.Fatal("expected image2 unchanged")
	}
	if _, ok := f.media.files[*before.Slots.Images[1]]; !ok {
		t.Fatal("previously persisted file must survive a failed update")
	}
	if _, ok := f.media.files[stored]; ok {
		t.Fatal("expected new upload to be removed")
	}
	if len(f.notifier.events) != 0 {
		t.Fatal("expected no notification on failure")
	}
}

func TestUpdateNonAtomicPartialFailure(t *testing.T) {
	f := newFixture(false)
	id, before := seedProduct(t, f)
	f.store.failReplace = errBoom

	sub := f.submission(map[string]string{"title": "Changed", "variants": `[{"weight":"1kg","price":1}]`}, "image2")
	stored := sub.Files[0].StoredName

	err := f.svc.UpdateProduct(context.Background(), id, sub)
	var se *models.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}

	p, _ := f.store.GetByID(context.Background(), id)
	if p.Title != "Changed" {
		t.Fatalf("expected header written before the failure, got %q", p.Title)
	}
	if len(p.Variants) != 0 {
		t.Fatalf("expected variants lost by the partial write, got %d", len(p.Variants))
	}
	if *p.Slots.Images[1] != stored {
		t.Fatal("expected header to reference the new upload")
	}
	if _, ok := f.media.files[stored]; !ok {
		t.Fatal("upload referenced by the persisted header must be kept")
	}
	if _, ok := f.media.files[*before.Slots.Images[1]]; ok {
		t.Fatal("displaced file should be reaped once the header is persisted")
	}
	if f.store.txCalls != 0 {
		t.Fatalf("expected no transaction, got %d", f.store.txCalls)
	}
	if len(f.notifier.events) != 0 {
		t.Fatal("expected no notification on partial failure")
	}
}

func TestDeleteRemovesEverything(t *testing.T) {
	f := newFixture(true)
	id, _ := seedProduct(t, f)

	if err := f.svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}

	if len(f.media.deletes) != 7 {
		t.Fatalf("expected 7 deletion attempts, got %d: %v", len(f.media.deletes), f.media.deletes)
	}
	if len(f.media.files) != 0 {
		t.Fatalf("expected no residual files, got %v", f.media.files)
	}
	if len(f.store.products) != 0 || f.store.variantRows() != 0 {
		t.Fatalf("expected no residual rows, got %d products %d variants", len(f.store.products), f.store.variantRows())
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Title != "Ghee" || f.notifier.events[0].Category != "Dairy" {
		t.Fatalf("unexpected notifications %+v", f.notifier.events)
	}
}

func TestDeleteSurvivesMissingFiles(t *testing.T) {
	f := newFixture(true)
	id, before := seedProduct(t, f)
	delete(f.media.files, *before.Slots.Images[3])
	f.media.failDel[*before.Slots.Images[4]] = errBoom
	f.notifier.err = errBoom

	if err := f.svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}
	if len(f.media.deletes) != 7 {
		t.Fatalf("expected 7 deletion attempts, got %d", len(f.media.deletes))
	}
}

func TestDeleteEmptyProductAttemptsNothing(t *testing.T) {
	f := newFixture(true)
	id, err := f.store.InsertHeader(context.Background(), models.ProductHeader{Title: "Bare", Status: models.StatusActive}, models.SlotState{})
	if err != nil {
		t.Fatalf("InsertHeader returned error: %v", err)
	}

	if err := f.svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}
	if len(f.media.deletes) != 0 {
		t.Fatalf("expected no media calls for empty slots, got %v", f.media.deletes)
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	f := newFixture(true)
	if err := f.svc.DeleteProduct(context.Background(), 9); !errors.Is(err, models.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestListProducts(t *testing.T) {
	f := newFixture(true)
	seedProduct(t, f)
	if _, err := f.store.InsertHeader(context.Background(), models.ProductHeader{Title: "Hidden", Status: models.StatusDisabled}, models.SlotState{}); err != nil {
		t.Fatalf("InsertHeader returned error: %v", err)
	}

	active, err := f.svc.ListProducts(context.Background(), "")
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Ghee" || len(active[0].Variants) != 2 {
		t.Fatalf("unexpected active list %+v", active)
	}

	disabled, err := f.svc.ListProducts(context.Background(), "Disabled")
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(disabled) != 1 || disabled[0].Title != "Hidden" {
		t.Fatalf("unexpected disabled list %+v", disabled)
	}

	if _, err := f.svc.ListProducts(context.Background(), "Archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	f := newFixture(true)
	id, _ := seedProduct(t, f)

	err := f.svc.UpdateProduct(context.Background(), id, f.submission(map[string]string{"title": " ", "variants": `[]`}))
	var ve *models.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("expected title ValidationError, got %v", err)
	}
	if got := f.store.products[id].Title; got != "Ghee" {
		t.Fatalf("expected title unchanged, got %q", got)
	}

	if err := f.svc.UpdateProduct(context.Background(), id, f.submission(map[string]string{"variants": `[]`})); err != nil {
		t.Fatalf("expected absent title to keep the stored one, got %v", err)
	}
}

func TestListUsesCacheUntilWrite(t *testing.T) {
	f := newFixture(true)
	id, _ := seedProduct(t, f)

	if _, err := f.svc.ListProducts(context.Background(), "Active"); err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if _, ok := f.cache.lists[models.StatusActive]; !ok {
		t.Fatal("expected list to be cached")
	}

	if err := f.svc.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}
	list, err := f.svc.ListProducts(context.Background(), "Active")
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}

func TestListFillOverlappingWriteIsNotCached(t *testing.T) {
	f := newFixture(true)
	id, _ := seedProduct(t, f)

	// The delete commits after the list has been read but before it is cached.
	f.store.onList = func() {
		if err := f.svc.DeleteProduct(context.Background(), id); err != nil {
			t.Fatalf("DeleteProduct returned error: %v", err)
		}
	}
	stale, err := f.svc.ListProducts(context.Background(), "Active")
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(stale) != 1 {
		t.Fatalf("expected the pre-delete read to return 1 product, got %d", len(stale))
	}
	if _, ok := f.cache.lists[models.StatusActive]; ok {
		t.Fatal("expected the overlapping fill to be dropped")
	}

	list, err := f.svc.ListProducts(context.Background(), "Active")
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected deleted product gone from the next list, got %d", len(list))
	}
}
