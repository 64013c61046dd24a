package public

import (
	"errors"
	"strings"

	handlershared "github.com/solemart/solemart/internal/http/handlers/shared"
	"github.com/solemart/solemart/internal/http/response"
	"github.com/solemart/solemart/internal/i18n"
	"github.com/solemart/solemart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// withDetail 的规则会把哨兵错误之外的包装明细拼进响应消息。
type mappedHandlerError struct {
	target     error
	code       int
	key        string
	withDetail bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			if rule.withDetail {
				if detail := wrappedErrorDetail(err, rule.target); detail != "" {
					msg := i18n.T(i18n.ResolveLocale(c), rule.key)
					handlershared.RespondErrorWithMsg(c, rule.code, msg+": "+detail, nil)
					return
				}
			}
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

// wrappedErrorDetail 提取包装在哨兵错误之后的明细文本。
func wrappedErrorDetail(err, target error) string {
	if err == nil || target == nil {
		return ""
	}
	msg := err.Error()
	prefix := target.Error()
	if msg == prefix || !strings.HasPrefix(msg, prefix) {
		return ""
	}
	detail := strings.TrimPrefix(msg, prefix)
	detail = strings.TrimPrefix(detail, ":")
	return strings.TrimSpace(detail)
}

var cartWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrSizeInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, key: "error.stock_insufficient", withDetail: true},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, key: "error.stock_insufficient", withDetail: true},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrSizeInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrPaymentSaveFailed, code: response.CodeBadRequest, key: "error.bad_request"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{target: service.ErrReviewOrderInvalid, code: response.CodeBadRequest, key: "error.review_order_invalid"},
	{target: service.ErrReviewDuplicate, code: response.CodeBadRequest, key: "error.review_duplicate"},
	{target: service.ErrReviewRatingInvalid, code: response.CodeBadRequest, key: "error.review_rating_invalid"},
}

func respondCartWriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartWriteErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "error.order_create_failed")
}

func respondReviewCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewCreateErrorRules, response.CodeInternal, "error.review_create_failed")
}
