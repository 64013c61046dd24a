package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/solemart/solemart/internal/models"
	"github.com/solemart/solemart/internal/provider"
	"github.com/solemart/solemart/internal/queue"
	"github.com/solemart/solemart/internal/repository"
	"github.com/solemart/solemart/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newConsumerForTest(t *testing.T) *Consumer {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	orderService := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewProductSizeRepository(db),
		repository.NewFlashSaleRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewShippingRepository(db),
		nil,
		30,
	)
	return NewConsumer(&provider.Container{OrderService: orderService})
}

func TestConsumerOrderTimeoutCancelInvalidPayload(t *testing.T) {
	consumer := newConsumerForTest(t)
	task := asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte("{"))
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for broken payload")
	}
}

func TestConsumerOrderTimeoutCancelSkipsZeroOrderID(t *testing.T) {
	consumer := newConsumerForTest(t)
	task := asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("expected zero order id to be skipped, got %v", err)
	}
}

func TestConsumerOrderTimeoutCancelSkipsMissingOrder(t *testing.T) {
	consumer := newConsumerForTest(t)
	task := asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte(`{"order_id":9999}`))
	if err := consumer.handleOrderTimeoutCancel(context.Background(), task); err != nil {
		t.Fatalf("expected missing order to be skipped, got %v", err)
	}
}

func TestConsumerOrderAutoCompleteSkipsMissingOrder(t *testing.T) {
	consumer := newConsumerForTest(t)
	task := asynq.NewTask(queue.TaskOrderAutoComplete, []byte(`{"order_id":9999}`))
	if err := consumer.handleOrderAutoComplete(context.Background(), task); err != nil {
		t.Fatalf("expected missing order to be skipped, got %v", err)
	}
}

func TestConsumerRegisterHandlesNil(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)

	NewConsumer(&provider.Container{}).Register(asynq.NewServeMux())
}
