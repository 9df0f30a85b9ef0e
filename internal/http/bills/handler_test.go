package bills_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/okvann/billdesk/internal/billing"
	"github.com/okvann/billdesk/internal/catalog"
	"github.com/okvann/billdesk/internal/http/auth"
	"github.com/okvann/billdesk/internal/http/bills"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, staffID string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": staffID}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	return token
}

func newRouter(billRepo *billing.MockRepository, catalogRepo *catalog.MockRepository) http.Handler {
	handler := bills.NewHandler(billing.NewService(billRepo), catalog.NewService(catalogRepo))

	r := chi.NewRouter()
	r.Use(auth.Middleware(testSecret))
	handler.Routes(r)

	return r
}

func recordBody(t *testing.T, staffID int64) string {
	t.Helper()

	body, err := json.Marshal(billing.TransactionRecord{
		StaffID:       staffID,
		CustomerName:  "Walk-in",
		CustomerPhone: "0000000000",
		TotalAmount:   13000,
		FinalAmount:   13000,
		PaymentMode:   "CASH",
		Items: []billing.RecordItem{
			{ProductID: "P1", ProductName: "Coffee", Quantity: 1, Price: 13000, TotalPrice: 13000},
		},
		BillNumber: "BILL-1700000000000",
	})
	require.NoError(t, err)

	return string(body)
}

func postBill(router http.Handler, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("deviceId", "COUNTER-1")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	t.Run("StampsStaffIDFromToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		billRepo := billing.NewMockRepository(ctrl)
		catalogRepo := catalog.NewMockRepository(ctrl)

		var stored *billing.Bill

		billRepo.EXPECT().
			CreateBill(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, bill *billing.Bill) error {
				bill.ID = "B1"
				stored = bill
				return nil
			})
		catalogRepo.EXPECT().
			GetProduct(gomock.Any(), "P1").
			Return(&catalog.Item{ID: "P1", StockOnHand: 5}, nil)
		catalogRepo.EXPECT().
			UpdateStock(gomock.Any(), "P1", 4).
			Return(nil)

		router := newRouter(billRepo, catalogRepo)

		// The payload omits staffId; the token subject fills it in.
		rec := postBill(router, signedToken(t, "7"), recordBody(t, 0))

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, stored)
		assert.Equal(t, int64(7), stored.StaffID)
	})

	t.Run("RejectsMismatchedStaffID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		router := newRouter(billing.NewMockRepository(ctrl), catalog.NewMockRepository(ctrl))

		rec := postBill(router, signedToken(t, "7"), recordBody(t, 9))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "staffId")
	})

	t.Run("AcceptsMatchingStaffID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		billRepo := billing.NewMockRepository(ctrl)
		catalogRepo := catalog.NewMockRepository(ctrl)

		billRepo.EXPECT().
			CreateBill(gomock.Any(), gomock.Any()).
			Return(nil)
		catalogRepo.EXPECT().
			GetProduct(gomock.Any(), "P1").
			Return(&catalog.Item{ID: "P1", StockOnHand: 5}, nil)
		catalogRepo.EXPECT().
			UpdateStock(gomock.Any(), "P1", 4).
			Return(nil)

		router := newRouter(billRepo, catalogRepo)

		rec := postBill(router, signedToken(t, "7"), recordBody(t, 7))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("MissingToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		router := newRouter(billing.NewMockRepository(ctrl), catalog.NewMockRepository(ctrl))

		rec := postBill(router, "", recordBody(t, 7))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidRecord", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		router := newRouter(billing.NewMockRepository(ctrl), catalog.NewMockRepository(ctrl))

		body := strings.Replace(recordBody(t, 7), `"paymentMode":"CASH"`, `"paymentMode":"CHEQUE"`, 1)

		rec := postBill(router, signedToken(t, "7"), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "payment mode")
	})
}
