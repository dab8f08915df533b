package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"vitalimes-backend/libs"
	"vitalimes-backend/models"

	"go.uber.org/zap"
)

type memStore struct {
	products  map[int]models.Product
	variants  map[int][]models.Variant
	nextID    int
	nextVarID int

	failReplace error
	failInsert  error
	failDelete  error
	txCalls     int

	// onList runs after ListByStatus has read its rows.
	onList func()
}

func newMemStore() *memStore {
	return &memStore{products: map[int]models.Product{}, variants: map[int][]models.Variant{}}
}

func (s *memStore) ListByStatus(ctx context.Context, status models.ProductStatus) ([]models.Product, error) {
	ids := []int{}
	for id, p := range s.products {
		if p.Status == status {
			ids = append(ids, id)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	out := []models.Product{}
	for _, id := range ids {
		p := s.products[id]
		p.Variants, _ = s.ListVariants(ctx, id)
		out = append(out, p)
	}
	if s.onList != nil {
		hook := s.onList
		s.onList = nil
		hook()
	}
	return out, nil
}

func (s *memStore) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	p.Variants, _ = s.ListVariants(ctx, id)
	return &p, nil
}

func (s *memStore) InsertHeader(ctx context.Context, h models.ProductHeader, slots models.SlotState) (int, error) {
	if s.failInsert != nil {
		return 0, s.failInsert
	}
	s.nextID++
	s.products[s.nextID] = headerProduct(s.nextID, h, slots)
	return s.nextID, nil
}

func (s *memStore) UpdateHeader(ctx context.Context, id int, h models.ProductHeader, slots models.SlotState) error {
	p, ok := s.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	next := headerProduct(id, h, slots)
	next.CreatedAt = p.CreatedAt
	s.products[id] = next
	return nil
}

func (s *memStore) DeleteHeader(ctx context.Context, id int) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	if _, ok := s.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memStore) ReplaceVariants(ctx context.Context, productID int, rows []models.Variant) error {
	delete(s.variants, productID)
	if s.failReplace != nil {
		return s.failReplace
	}
	for _, v := range rows {
		s.nextVarID++
		v.ID = s.nextVarID
		v.ProductID = productID
		s.variants[productID] = append(s.variants[productID], v)
	}
	return nil
}

func (s *memStore) ListVariants(ctx context.Context, productID int) ([]models.Variant, error) {
	return append([]models.Variant{}, s.variants[productID]...), nil
}

func (s *memStore) DeleteVariants(ctx context.Context, productID int) error {
	delete(s.variants, productID)
	return nil
}

// Atomically restores the previous maps when fn fails.
func (s *memStore) Atomically(ctx context.Context, fn func(CatalogStore) error) error {
	s.txCalls++
	products := make(map[int]models.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	variants := make(map[int][]models.Variant, len(s.variants))
	for k, v := range s.variants {
		variants[k] = append([]models.Variant(nil), v...)
	}

	if err := fn(s); err != nil {
		s.products, s.variants = products, variants
		return err
	}
	return nil
}

func (s *memStore) variantRows() int {
	n := 0
	for _, v := range s.variants {
		n += len(v)
	}
	return n
}

func headerProduct(id int, h models.ProductHeader, slots models.SlotState) models.Product {
	return models.Product{
		ID:          id,
		Title:       h.Title,
		Description: h.Description,
		Category:    h.Category,
		HSN:         h.HSN,
		Status:      h.Status,
		Units:       h.Units,
		Slots:       slots,
	}
}

type memMedia struct {
	mu        sync.Mutex
	files     map[string][]byte
	deletes   []string
	seq       int
	failStore map[string]error
	failDel   map[string]error
}

func newMemMedia() *memMedia {
	return &memMedia{files: map[string][]byte{}, failStore: map[string]error{}, failDel: map[string]error{}}
}

func (m *memMedia) Store(ctx context.Context, field, ext string, r io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failStore[field]; err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.seq++
	name := fmt.Sprintf("%s-%d%s", field, m.seq, ext)
	m.files[name] = buf.Bytes()
	return name, nil
}

func (m *memMedia) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, name)
	if err := m.failDel[name]; err != nil {
		return err
	}
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("%w: %s", libs.ErrMediaNotFound, name)
	}
	delete(m.files, name)
	return nil
}

func (m *memMedia) put(name string) *string {
	m.files[name] = []byte(name)
	return &name
}

type recordingNotifier struct {
	events []models.ProductEvent
	err    error
}

func (n *recordingNotifier) Notify(ctx context.Context, event models.ProductEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type countingCache struct {
	lists       map[models.ProductStatus][]models.Product
	invalidated int
}

func (c *countingCache) GetList(ctx context.Context, status models.ProductStatus) ([]models.Product, int64, bool) {
	p, ok := c.lists[status]
	return p, int64(c.invalidated), ok
}

func (c *countingCache) SetList(ctx context.Context, status models.ProductStatus, gen int64, products []models.Product) {
	if gen != int64(c.invalidated) {
		return
	}
	if c.lists == nil {
		c.lists = map[models.ProductStatus][]models.Product{}
	}
	c.lists[status] = products
}

func (c *countingCache) Invalidate(ctx context.Context) {
	c.invalidated++
	c.lists = nil
}

type fixture struct {
	svc      *ProductService
	store    *memStore
	media    *memMedia
	notifier *recordingNotifier
	cache    *countingCache
}

func newFixture(atomic bool) *fixture {
	f := &fixture{
		store:    newMemStore(),
		media:    newMemMedia(),
		notifier: &recordingNotifier{},
		cache:    &countingCache{},
	}
	log := zap.NewNop()
	f.svc = NewProductService(f.store, f.cache, NewOrphanReaper(f.media, log), f.notifier,
		ServiceConfig{Upload: DefaultUploadConfig(), AtomicWrites: atomic}, log)
	f.svc.async = func(fn func()) { fn() }
	return f
}

// submission builds a parsed form; files are stored in the fake media first.
func (f *fixture) submission(fields map[string]string, files ...string) *models.Submission {
	sub := &models.Submission{Fields: map[string][]string{}, Files: []models.StoredFile{}}
	for k, v := range fields {
		sub.Fields[k] = []string{v}
	}
	for _, field := range files {
		name, _ := f.media.Store(context.Background(), field, ".jpg", bytes.NewReader([]byte(field)))
		sub.Files = append(sub.Files, models.StoredFile{Field: field, StoredName: name})
	}
	return sub
}

var errBoom = errors.New("boom")
