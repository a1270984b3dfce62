package service

import (
	"context"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/payment"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes backing the service tests.

type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) List(_ context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	out := []models.Product{}
	for _, p := range s.products {
		if !q.IncludeInactive && !p.Active {
			continue
		}
		if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) GetMany(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := map[primitive.ObjectID]models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = *p
		}
	}
	return out, nil
}

func (s *fakeProductStore) Insert(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	s.products[p.ID] = p
	return nil
}

func (s *fakeProductStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.Stock < quantity {
		return repository.ErrStockConflict
	}
	p.Stock -= quantity
	return nil
}

func (s *fakeProductStore) SetRating(_ context.Context, id primitive.ObjectID, rating models.Rating) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Rating = rating
	return nil
}

func (s *fakeProductStore) LowStock(_ context.Context, threshold int) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range s.products {
		if p.Active && p.Stock < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCategoryStore struct {
	categories map[primitive.ObjectID]*models.Category
}

func newFakeCategoryStore(categories ...*models.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{categories: map[primitive.ObjectID]*models.Category{}}
	for _, c := range categories {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		s.categories[c.ID] = c
	}
	return s
}

func (s *fakeCategoryStore) List(_ context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) Insert(_ context.Context, category *models.Category) error {
	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateKey
		}
	}
	category.ID = primitive.NewObjectID()
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

type fakeCartStore struct {
	carts map[primitive.ObjectID]*models.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[primitive.ObjectID]*models.Cart{}}
}

func (s *fakeCartStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := s.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	return &cp, nil
}

func (s *fakeCartStore) ReplaceItems(_ context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID}
		s.carts[userID] = cart
	}
	cart.Items = append([]models.CartItem{}, items...)
	return nil
}

func (s *fakeCartStore) Clear(_ context.Context, userID primitive.ObjectID) error {
	if cart, ok := s.carts[userID]; ok {
		cart.Items = []models.CartItem{}
	}
	return nil
}

type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (s *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *fakeOrderStore) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.Order, error) {
	for _, order := range s.orders {
		if order.GatewayOrderID == gatewayOrderID {
			cp := *order
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListAll(_ context.Context, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	out := []models.Order{}
	for _, order := range s.orders {
		if status == "" || order.Status == status {
			out = append(out, *order)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	order, ok := s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	return nil
}

func (s *fakeOrderStore) MarkPlaced(_ context.Context, id primitive.ObjectID, gatewayPaymentID string) error {
	order, ok := s.orders[id]
	if !ok || order.Status != models.OrderStatusPending {
		return repository.ErrNotFound
	}
	order.Status = models.OrderStatusPlaced
	order.GatewayPaymentID = gatewayPaymentID
	return nil
}

func (s *fakeOrderStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *fakeOrderStore) Revenue(_ context.Context) (float64, error) {
	var sum float64
	for _, order := range s.orders {
		if order.Status != models.OrderStatusCancelled {
			sum += order.TotalAmount
		}
	}
	return sum, nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email != "" && existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	cp.Addresses = append([]models.Address{}, user.Addresses...)
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, name, phone string) error {
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	return nil
}

func (s *fakeUserStore) ReplaceAddresses(_ context.Context, id primitive.ObjectID, addresses []models.Address) error {
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Addresses = append([]models.Address{}, addresses...)
	return nil
}

func (s *fakeUserStore) SetPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Password = hash
	return nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type fakeOTPStore struct {
	records map[string]*repository.OTPRecord
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{records: map[string]*repository.OTPRecord{}}
}

func (s *fakeOTPStore) PutOTP(_ context.Context, email string, rec *repository.OTPRecord, _ time.Duration) error {
	cp := *rec
	s.records[email] = &cp
	return nil
}

func (s *fakeOTPStore) GetOTP(_ context.Context, email string) (*repository.OTPRecord, error) {
	rec, ok := s.records[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeOTPStore) BumpOTPAttempts(_ context.Context, email string, rec *repository.OTPRecord) error {
	if stored, ok := s.records[email]; ok {
		stored.Attempts++
	}
	return nil
}

func (s *fakeOTPStore) DeleteOTP(_ context.Context, email string) error {
	delete(s.records, email)
	return nil
}

type fakeReviewStore struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (s *fakeReviewStore) Insert(_ context.Context, review *models.Review) error {
	for _, existing := range s.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return repository.ErrDuplicateKey
		}
	}
	review.ID = primitive.NewObjectID()
	cp := *review
	s.reviews[review.ID] = &cp
	return nil
}

func (s *fakeReviewStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *review
	return &cp, nil
}

func (s *fakeReviewStore) Update(_ context.Context, id primitive.ObjectID, rating int, comment string) error {
	review, ok := s.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	review.Rating = rating
	review.Comment = comment
	return nil
}

func (s *fakeReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *fakeReviewStore) ListByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	out := []models.Review{}
	for _, review := range s.reviews {
		if review.ProductID == productID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) Aggregate(_ context.Context, productID primitive.ObjectID) (models.Rating, error) {
	var sum, count int
	for _, review := range s.reviews {
		if review.ProductID == productID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return models.Rating{}, nil
	}
	return models.Rating{Average: float64(sum) / float64(count), Count: count}, nil
}

type fakeGateway struct {
	orders      []int64 // amounts of created gateway orders
	validSig    string
	nextOrderID string
	createErr   error
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, receipt string) (*payment.GatewayOrder, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders = append(g.orders, amount)
	id := g.nextOrderID
	if id == "" {
		id = "order_fake_1"
	}
	return &payment.GatewayOrder{ID: id, Amount: amount, Currency: "INR", Receipt: receipt, Status: "created"}, nil
}

func (g *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == g.validSig
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

type fakeNotifier struct {
	orderMails []string // recipient addresses
	otpMails   map[string]string
	sendErr    error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{otpMails: map[string]string{}}
}

func (n *fakeNotifier) SendOrderConfirmation(to, _ string, _ *models.Order) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.orderMails = append(n.orderMails, to)
	return nil
}

func (n *fakeNotifier) SendPasswordResetOTP(to, otp string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.otpMails[to] = otp
	return nil
}

// fakeTxn runs the callback directly; failure semantics (all-or-nothing)
// are covered by the real driver.
type fakeTxn struct {
	calls int
}

func (t *fakeTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeDashboardCache struct {
	stats *DashboardStats
}

func (c *fakeDashboardCache) CacheDashboard(_ context.Context, stats interface{}, _ time.Duration) error {
	if s, ok := stats.(*DashboardStats); ok {
		cp := *s
		c.stats = &cp
	}
	return nil
}

func (c *fakeDashboardCache) GetDashboard(_ context.Context, dest interface{}) error {
	if c.stats == nil {
		return repository.ErrNotFound
	}
	if d, ok := dest.(*DashboardStats); ok {
		*d = *c.stats
	}
	return nil
}
