package usecase

import (
	"context"
	"errors"
	"testing"

	"invoicetracker/internal/domain/entities"
	mock_interfaces "invoicetracker/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestProductUseCase_Create(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Product) (entities.Product, error) {
				if p.ID == 0 || !p.Active {
					t.Fatalf("expected an active product with an id, got %+v", p)
				}
				return p, nil
			})

		p, err := uc.Create(context.Background(), "  Engine Oil  ", dec("50.00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Engine Oil" {
			t.Fatalf("expected trimmed name, got %q", p.Name)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		_, err := uc.Create(context.Background(), "   ", dec("50.00"))
		if !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("expected ErrInvalidProduct, got %v", err)
		}
	})

	t.Run("non positive price", func(t *testing.T) {
		uc := NewProductUseCase(nil)
		for _, price := range []string{"0", "-1"} {
			if _, err := uc.Create(context.Background(), "Engine Oil", dec(price)); !errors.Is(err, ErrInvalidProduct) {
				t.Fatalf("expected ErrInvalidProduct for price %s, got %v", price, err)
			}
		}
	})
}

func TestProductUseCase_Get(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(99)).Return(entities.Product{}, nil)

		_, err := uc.Get(context.Background(), 99)
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("deactivated product reads as missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewProductUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Product{ID: 5, Active: false}, nil)

		_, err := uc.Get(context.Background(), 5)
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestProductUseCase_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIProductRepository(ctrl)
	uc := NewProductUseCase(repo)

	repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Product{ID: 5, Name: "Old", UnitPrice: dec("10"), Active: true}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.Product) (entities.Product, error) {
			if p.Name != "New" || p.UnitPrice.StringFixed(2) != "20.00" {
				t.Fatalf("unexpected update payload: %+v", p)
			}
			return p, nil
		})

	if _, err := uc.Update(context.Background(), 5, "New", dec("20")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductUseCase_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIProductRepository(ctrl)
	uc := NewProductUseCase(repo)

	repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Product{ID: 5, Name: "Engine Oil", UnitPrice: dec("10"), Active: true}, nil)
	repo.EXPECT().Deactivate(gomock.Any(), int64(5)).Return(nil)

	if err := uc.Deactivate(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
