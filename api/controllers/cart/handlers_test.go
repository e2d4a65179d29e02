package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/api/middleware"
	cartsvc "github.com/olivercruz/dishpatch-backend/internal/cart"
	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
)

type stubEngine struct {
	addInput  *cartsvc.AddLineInput
	addResult *models.Cart
	addErr    error
}

func (s *stubEngine) AddLine(_ context.Context, input cartsvc.AddLineInput) (*models.Cart, error) {
	s.addInput = &input
	if s.addErr != nil {
		return nil, s.addErr
	}
	return s.addResult, nil
}

func (s *stubEngine) UpdateLineQuantity(context.Context, cartsvc.UpdateLineInput) (*models.Cart, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
}

func (s *stubEngine) RemoveLine(context.Context, cartsvc.Key, uuid.UUID) (*models.Cart, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
}

func (s *stubEngine) ClearCart(context.Context, cartsvc.Key) (*models.Cart, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
}

func (s *stubEngine) GetCart(_ context.Context, key cartsvc.Key) (*models.Cart, error) {
	return &models.Cart{CustomerID: key.CustomerID, RestaurantID: key.RestaurantID, Lines: []models.CartLine{}}, nil
}

func (s *stubEngine) GetSummary(_ context.Context, key cartsvc.Key) (*cartsvc.Summary, error) {
	return &cartsvc.Summary{RestaurantID: key.RestaurantID}, nil
}

func (s *stubEngine) Checkout(context.Context, cartsvc.Key) (*models.Cart, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
}

func (s *stubEngine) ListCarts(context.Context, uuid.UUID) ([]models.Cart, error) {
	return []models.Cart{}, nil
}

func newHandlerRouter(svc cartsvc.Service) chi.Router {
	r := chi.NewRouter()
	r.Route("/restaurants/{restaurantID}/cart", func(r chi.Router) {
		r.Get("/", CartFetch(svc, nil))
		r.Post("/lines", CartAddLine(svc, nil))
		r.Patch("/lines/{lineID}", CartUpdateLine(svc, nil))
	})
	return r
}

func withCustomer(req *http.Request, customerID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithCustomerID(req.Context(), customerID.String()))
}

func TestCartAddLineDecodesPayload(t *testing.T) {
	customerID := uuid.New()
	restaurantID := uuid.New()
	itemID := uuid.New()
	optionID := uuid.New()
	choiceID := uuid.New()

	engine := &stubEngine{addResult: &models.Cart{CustomerID: customerID, RestaurantID: restaurantID}}
	router := newHandlerRouter(engine)

	body := `{
		"item_id": "` + itemID.String() + `",
		"quantity": 2,
		"options": [
			{"option_id": "` + optionID.String() + `", "choices": [{"choice_id": "` + choiceID.String() + `", "quantity": 1}]}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/restaurants/"+restaurantID.String()+"/cart/lines", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCustomer(req, customerID))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if engine.addInput == nil {
		t.Fatal("service was not called")
	}
	if engine.addInput.ItemID != itemID || engine.addInput.Quantity != 2 {
		t.Fatalf("payload not mapped: %+v", engine.addInput)
	}
	if len(engine.addInput.Options) != 1 || engine.addInput.Options[0].OptionID != optionID {
		t.Fatalf("options not mapped: %+v", engine.addInput.Options)
	}
	if engine.addInput.CustomerID != customerID || engine.addInput.RestaurantID != restaurantID {
		t.Fatalf("identity not derived from context and path: %+v", engine.addInput)
	}
}

func TestCartAddLineRejectsUnknownFields(t *testing.T) {
	engine := &stubEngine{addResult: &models.Cart{}}
	router := newHandlerRouter(engine)

	req := httptest.NewRequest(
		http.MethodPost,
		"/restaurants/"+uuid.NewString()+"/cart/lines",
		strings.NewReader(`{"item_id":"`+uuid.NewString()+`","bogus":true}`),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCustomer(req, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if engine.addInput != nil {
		t.Fatal("service should not be called on an invalid payload")
	}
}

func TestCartHandlersRequireCustomerContext(t *testing.T) {
	router := newHandlerRouter(&stubEngine{})

	req := httptest.NewRequest(http.MethodGet, "/restaurants/"+uuid.NewString()+"/cart/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartUpdateLineRejectsBadLineID(t *testing.T) {
	router := newHandlerRouter(&stubEngine{})

	req := httptest.NewRequest(
		http.MethodPatch,
		"/restaurants/"+uuid.NewString()+"/cart/lines/not-a-uuid",
		strings.NewReader(`{"quantity":2}`),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCustomer(req, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartSummaryResponseShape(t *testing.T) {
	customerID := uuid.New()
	restaurantID := uuid.New()
	router := chi.NewRouter()
	router.Get("/restaurants/{restaurantID}/cart/summary", CartSummary(&stubEngine{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/restaurants/"+restaurantID.String()+"/cart/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withCustomer(req, customerID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data cartsvc.Summary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.RestaurantID != restaurantID {
		t.Fatalf("unexpected summary: %+v", envelope.Data)
	}
}
