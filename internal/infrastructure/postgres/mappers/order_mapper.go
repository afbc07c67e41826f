package mappers

import (
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		UserID:              order.UserID,
		SellerID:            order.SellerID,
		Status:              order.Status,
		PaymentStatus:       order.PaymentStatus,
		EscrowStatus:        order.EscrowStatus,
		TotalAmount:         order.TotalAmount,
		EscrowAmount:        order.EscrowAmount,
		Currency:            order.Currency,
		ShippingAddress:     order.ShippingAddress,
		ShippingCity:        order.ShippingCity,
		ShippingPhone:       order.ShippingPhone,
		PaymentMethod:       order.PaymentMethod,
		PaymentReference:    order.PaymentReference,
		Notes:               order.Notes,
		DeliveryConfirmedAt: order.DeliveryConfirmedAt,
		FundsReleasedAt:     order.FundsReleasedAt,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:                  model.ID,
		OrderNumber:         model.OrderNumber,
		UserID:              model.UserID,
		SellerID:            model.SellerID,
		Status:              model.Status,
		PaymentStatus:       model.PaymentStatus,
		EscrowStatus:        model.EscrowStatus,
		TotalAmount:         model.TotalAmount,
		EscrowAmount:        model.EscrowAmount,
		Currency:            model.Currency,
		ShippingAddress:     model.ShippingAddress,
		ShippingCity:        model.ShippingCity,
		ShippingPhone:       model.ShippingPhone,
		PaymentMethod:       model.PaymentMethod,
		PaymentReference:    model.PaymentReference,
		Notes:               model.Notes,
		DeliveryConfirmedAt: model.DeliveryConfirmedAt,
		FundsReleasedAt:     model.FundsReleasedAt,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
	for i := range model.Items {
		order.Items = append(order.Items, ToDomainOrderItem(&model.Items[i]))
	}
	return order
}

func ToGORMOrderItem(item *domain.OrderItem) *models.OrderItemModel {
	return &models.OrderItemModel{
		ID:          item.ID,
		OrderID:     item.OrderID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Subtotal:    item.Subtotal,
	}
}

func ToDomainOrderItem(model *models.OrderItemModel) *domain.OrderItem {
	return &domain.OrderItem{
		ID:          model.ID,
		OrderID:     model.OrderID,
		ProductID:   model.ProductID,
		ProductName: model.ProductName,
		Quantity:    model.Quantity,
		Price:       model.Price,
		Subtotal:    model.Subtotal,
	}
}
