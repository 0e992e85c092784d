package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("q.GetProduct: %w", ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapDBProductToDomain(dbProduct)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	dbProducts, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(dbProducts))
	for _, dbProduct := range dbProducts {
		product, err := mapDBProductToDomain(dbProduct)
		if err != nil {
			return nil, fmt.Errorf("mapDBProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if product.Name == "" {
		return uuid.Nil, errors.New("name is empty")
	}
	if product.Price.Currency == (currency.Unit{}) {
		return uuid.Nil, errors.New("price currency is empty")
	}

	productID, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Width:         product.Dimensions.Width,
		Height:        product.Dimensions.Height,
		Length:        product.Dimensions.Length,
		Weight:        product.Dimensions.Weight,
		Url:           product.URL,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertProduct: %w", mapPgError(err))
	}

	return productID, nil
}

// UpdatePrice changes the catalog price only, cart lines keep the price they were added with.
func (r *productRepository) UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) error {
	if price.Currency == (currency.Unit{}) {
		return errors.New("price currency is empty")
	}

	cmdTag, err := r.q.UpdateProductPrice(ctx, db.UpdateProductPriceParams{
		ID:            productID,
		PriceAmount:   price.Amount,
		PriceCurrency: price.Currency.String(),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateProductPrice: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateProductPrice: %w", ErrNotFound)
	}

	return nil
}

func mapDBProductToDomain(dbProduct db.Product) (domain.Product, error) {
	parsedCurrency, err := parseCurrency(dbProduct.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:    dbProduct.ID,
		Name:  dbProduct.Name,
		Price: domain.Money{Amount: dbProduct.PriceAmount, Currency: parsedCurrency},
		Dimensions: domain.Dimensions{
			Width:  dbProduct.Width,
			Height: dbProduct.Height,
			Length: dbProduct.Length,
			Weight: dbProduct.Weight,
		},
		URL:       dbProduct.Url,
		CreatedAt: dbProduct.CreatedAt,
		UpdatedAt: dbProduct.UpdatedAt,
	}, nil
}
