package mappers

import (
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		ShopID:    model.ShopID,
		SellerID:  model.SellerID,
		Name:      model.Name,
		Price:     model.Price,
		Stock:     model.Stock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToDomainCartItem(model *models.CartItemModel) *domain.CartItem {
	return &domain.CartItem{
		ID:        model.ID,
		UserID:    model.UserID,
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
	}
}
