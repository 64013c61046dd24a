package service

import (
	"errors"
	"testing"

	"github.com/solemart/solemart/internal/repository"
)

func TestCategoryCreateAndSlugUniqueness(t *testing.T) {
	db := newServiceTestDB(t, "category_create")
	seedStore(t, db)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	created, err := svc.Create(SaveCategoryInput{Slug: "boots", Name: "户外靴", SortOrder: 5})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("created category should have id")
	}

	if _, err := svc.Create(SaveCategoryInput{Slug: "boots", Name: "重复"}); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("duplicate slug want ErrCategoryInvalid got %v", err)
	}
	if _, err := svc.Create(SaveCategoryInput{Slug: " ", Name: "空"}); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("blank slug want ErrCategoryInvalid got %v", err)
	}
}

func TestCategoryDeleteRejectsAttachedProducts(t *testing.T) {
	db := newServiceTestDB(t, "category_delete")
	fixture := seedStore(t, db)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	if err := svc.Delete(fixture.category.ID); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("delete with products attached want ErrCategoryInvalid got %v", err)
	}

	empty, err := svc.Create(SaveCategoryInput{Slug: "sandals", Name: "凉鞋"})
	if err != nil {
		t.Fatalf("create empty category failed: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if err := svc.Delete(empty.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("double delete want ErrCategoryNotFound got %v", err)
	}
}
