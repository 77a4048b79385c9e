package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle, either the
// connection pool or a single transaction.
type Store struct {
	Users      UserRepository
	Categories CategoryRepository
	Products   ProductRepository
	Carts      CartRepository
	Addresses  AddressRepository
	Orders     OrderRepository
	Payments   PaymentRepository
}

// NewGORMStore builds a Store whose repositories all use db.
func NewGORMStore(db *gorm.DB) *Store {
	return &Store{
		Users:      NewGORMUserRepository(db),
		Categories: NewGORMCategoryRepository(db),
		Products:   NewGORMProductRepository(db),
		Carts:      NewGORMCartRepository(db),
		Addresses:  NewGORMAddressRepository(db),
		Orders:     NewGORMOrderRepository(db),
		Payments:   NewGORMPaymentRepository(db),
	}
}

// UnitOfWork runs work against a Store and commits it atomically.
type UnitOfWork interface {
	// Store returns repositories that run outside any transaction.
	Store(ctx context.Context) *Store
	// Execute runs fn inside one transaction. It commits when fn returns nil
	// and rolls back on an error or panic.
	Execute(ctx context.Context, fn func(store *Store) error) error
}

// GORMUnitOfWork is a UnitOfWork backed by GORM transactions.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db}
}

func (u *GORMUnitOfWork) Store(ctx context.Context) *Store {
	return NewGORMStore(u.db.WithContext(ctx))
}

func (u *GORMUnitOfWork) Execute(ctx context.Context, fn func(store *Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
}
