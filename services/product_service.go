package services

import (
	"context"
	"strings"

	"vitalimes-backend/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ServiceConfig struct {
	Upload UploadConfig
	// AtomicWrites wraps the header write and the variant replace in one
	// transaction. Without it a failure between the two steps leaves the new
	// header with a stale or empty variant set.
	AtomicWrites bool
}

type ProductService struct {
	store    CatalogStore
	cache    ListCache
	resolver *SlotResolver
	variants *VariantReconciler
	reaper   *OrphanReaper
	notifier Notifier
	validate *validator.Validate
	cfg      ServiceConfig
	log      *zap.Logger

	// async runs post-write side effects; tests swap it for a synchronous call.
	async func(func())
}

func NewProductService(store CatalogStore, cache ListCache, reaper *OrphanReaper, notifier Notifier, cfg ServiceConfig, log *zap.Logger) *ProductService {
	if cache == nil {
		cache = noCache{}
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	v := validator.New()
	return &ProductService{
		store:    store,
		cache:    cache,
		resolver: NewSlotResolver(cfg.Upload),
		variants: NewVariantReconciler(v),
		reaper:   reaper,
		notifier: notifier,
		validate: v,
		cfg:      cfg,
		log:      log,
		async:    func(f func()) { go f() },
	}
}

func (s *ProductService) ListProducts(ctx context.Context, status string) ([]models.Product, error) {
	st := models.ProductStatus(strings.TrimSpace(status))
	if st == "" {
		st = models.StatusActive
	}
	if !st.Valid() {
		return nil, models.NewValidationError("status", "status must be Active or Disabled")
	}

	cached, gen, ok := s.cache.GetList(ctx, st)
	if ok {
		return cached, nil
	}

	products, err := s.store.ListByStatus(ctx, st)
	if err != nil {
		return nil, models.WrapStorage("list products", err)
	}

	s.cache.SetList(ctx, st, gen, products)
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, models.WrapStorage("get product", err)
	}
	return p, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, sub *models.Submission) (int, error) {
	header, err := s.headerFor(sub, nil)
	if err != nil {
		s.discardUploads(ctx, sub)
		return 0, err
	}

	inputs, err := s.variants.Parse(sub)
	if err != nil {
		s.discardUploads(ctx, sub)
		return 0, err
	}

	res := s.resolver.Resolve(models.SlotState{}, s.resolver.RemovalDirectives(sub), sub.Files)

	var id int
	persisted, err := s.writeProduct(ctx,
		func(st CatalogStore) error {
			var werr error
			id, werr = st.InsertHeader(ctx, header, res.Next)
			return werr
		},
		func(st CatalogStore) error {
			return s.variants.Apply(ctx, st, id, inputs)
		},
	)
	if !persisted {
		s.discardUploads(ctx, sub)
		return 0, models.WrapStorage("create product", err)
	}

	s.afterWrite(ctx, res.Deletions, models.ProductEvent{
		Action:    models.EventCreated,
		ProductID: id,
		Title:     header.Title,
		Category:  header.Category,
		Status:    header.Status,
		Units:     header.Units,
	}, err == nil)

	if err != nil {
		return id, models.WrapStorage("create product variants", err)
	}
	return id, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, sub *models.Submission) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.discardUploads(ctx, sub)
		return models.WrapStorage("load product", err)
	}

	header, err := s.headerFor(sub, current)
	if err != nil {
		s.discardUploads(ctx, sub)
		return err
	}

	inputs, err := s.variants.Parse(sub)
	if err != nil {
		s.discardUploads(ctx, sub)
		return err
	}

	res := s.resolver.Resolve(current.Slots, s.resolver.RemovalDirectives(sub), sub.Files)

	persisted, err := s.writeProduct(ctx,
		func(st CatalogStore) error {
			return st.UpdateHeader(ctx, id, header, res.Next)
		},
		func(st CatalogStore) error {
			return s.variants.Apply(ctx, st, id, inputs)
		},
	)
	if !persisted {
		s.discardUploads(ctx, sub)
		return models.WrapStorage("update product", err)
	}

	s.afterWrite(ctx, res.Deletions, models.ProductEvent{
		Action:    models.EventUpdated,
		ProductID: id,
		Title:     header.Title,
		Category:  header.Category,
		Status:    header.Status,
		Units:     header.Units,
	}, err == nil)

	if err != nil {
		return models.WrapStorage("replace product variants", err)
	}
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.WrapStorage("load product", err)
	}

	persisted, err := s.writeProduct(ctx,
		func(st CatalogStore) error {
			return st.DeleteVariants(ctx, id)
		},
		func(st CatalogStore) error {
			return st.DeleteHeader(ctx, id)
		},
	)
	if err != nil {
		if persisted {
			s.cache.Invalidate(ctx)
		}
		return models.WrapStorage("delete product", err)
	}

	s.cache.Invalidate(ctx)

	candidates := DeleteCandidates(p.Slots)
	event := models.ProductEvent{Action: models.EventDeleted, ProductID: id, Title: p.Title, Category: p.Category}
	bg := context.WithoutCancel(ctx)
	s.async(func() {
		for _, name := range candidates {
			s.reaper.Remove(bg, name)
		}
		s.notify(bg, event)
	})
	return nil
}

// writeProduct runs the two persistence steps, atomically when configured.
// persisted reports whether the first step is durable.
func (s *ProductService) writeProduct(ctx context.Context, first, second func(CatalogStore) error) (persisted bool, err error) {
	if s.cfg.AtomicWrites {
		err = s.store.Atomically(ctx, func(st CatalogStore) error {
			if err := first(st); err != nil {
				return err
			}
			return second(st)
		})
		return err == nil, err
	}

	if err = first(s.store); err != nil {
		return false, err
	}
	if err = second(s.store); err != nil {
		s.log.Error("partial catalog write: header persisted, second step failed", zap.Error(err))
		return true, err
	}
	return true, nil
}

func (s *ProductService) afterWrite(ctx context.Context, deletions []string, event models.ProductEvent, complete bool) {
	s.cache.Invalidate(ctx)

	bg := context.WithoutCancel(ctx)
	s.async(func() {
		s.reaper.RemoveAll(bg, deletions)
		if complete {
			s.notify(bg, event)
		}
	})
}

func (s *ProductService) notify(ctx context.Context, event models.ProductEvent) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.log.Warn("product notification failed",
			zap.String("action", event.Action),
			zap.Int("product_id", event.ProductID),
			zap.Error(err),
		)
	}
}

// discardUploads reaps files the intake stored for a request that did not persist.
func (s *ProductService) discardUploads(ctx context.Context, sub *models.Submission) {
	names := sub.StoredNames()
	if len(names) == 0 {
		return
	}
	bg := context.WithoutCancel(ctx)
	s.async(func() { s.reaper.RemoveAll(bg, names) })
}

var headerFields = []string{"title", "description", "category", "hsn", "status", "units"}

// headerFor builds the header from the form. On update, fields absent from the
// form keep their persisted value.
func (s *ProductService) headerFor(sub *models.Submission, current *models.Product) (models.ProductHeader, error) {
	h := models.ProductHeader{}
	if current != nil {
		h = models.ProductHeader{
			Title:       current.Title,
			Description: current.Description,
			Category:    current.Category,
			HSN:         current.HSN,
			Status:      current.Status,
			Units:       current.Units,
		}
	}

	for _, name := range headerFields {
		v, ok := sub.Value(name)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		switch name {
		case "title":
			h.Title = v
		case "description":
			h.Description = v
		case "category":
			h.Category = v
		case "hsn":
			h.HSN = v
		case "status":
			h.Status = models.ProductStatus(v)
		case "units":
			h.Units = v
		}
	}

	if h.Status == "" {
		h.Status = models.StatusActive
	}

	if err := s.validate.Struct(h); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			f := verrs[0]
			if f.Field() == "Status" {
				return h, models.NewValidationError("status", "status must be Active or Disabled")
			}
			return h, models.NewValidationError(strings.ToLower(f.Field()), "%s is required", strings.ToLower(f.Field()))
		}
		return h, models.NewValidationError("", "%s", err.Error())
	}
	return h, nil
}
