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

// Store interfaces consumed by the services, implemented by the
// repository package and by fakes in tests.

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, phone string) error
	ReplaceAddresses(ctx context.Context, id primitive.ObjectID, addresses []models.Address) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	Count(ctx context.Context) (int64, error)
}

type ProductStore interface {
	List(ctx context.Context, q repository.ProductQuery) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	SetRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) error
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Insert(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartStore interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	MarkPlaced(ctx context.Context, id primitive.ObjectID, gatewayPaymentID string) error
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (float64, error)
}

type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, rating int, comment string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	Aggregate(ctx context.Context, productID primitive.ObjectID) (models.Rating, error)
}

// OTPStore holds pending password resets with their validity window.
type OTPStore interface {
	PutOTP(ctx context.Context, email string, rec *repository.OTPRecord, ttl time.Duration) error
	GetOTP(ctx context.Context, email string) (*repository.OTPRecord, error)
	BumpOTPAttempts(ctx context.Context, email string, rec *repository.OTPRecord) error
	DeleteOTP(ctx context.Context, email string) error
}

// Gateway is the payment provider surface the checkout service needs.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (*payment.GatewayOrder, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	KeyID() string
}

// Notifier sends best-effort transactional mail.
type Notifier interface {
	SendOrderConfirmation(to, name string, order *models.Order) error
	SendPasswordResetOTP(to, otp string) error
}

// TxnRunner runs fn inside one transactional boundary.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
