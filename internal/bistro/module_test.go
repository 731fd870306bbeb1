package bistro_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bistro-boss/internal/auth"
	"bistro-boss/internal/auth/testutil"
	"bistro-boss/internal/bistro"
	"bistro-boss/internal/bistro/adapter/persistence/memory"
	"bistro-boss/internal/bistro/usecase"
	apperrors "bistro-boss/internal/shared/errors"
	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type BistroModuleTestSuite struct {
	suite.Suite
	app   *fiber.App
	store *memory.Store
}

func (s *BistroModuleTestSuite) SetupTest() {
	log := logger.NewLoggerWithConfig("error", "text")
	s.store = memory.NewStore()

	module, err := bistro.NewBistroModule(s.store, usecase.Options{}, log)
	s.Require().NoError(err)
	authModule, err := auth.NewAuthModule(module.Accounts(), nil, testutil.TestConfig(), log)
	s.Require().NoError(err)

	s.app = fiber.New(fiber.Config{ErrorHandler: apperrors.NewFiberErrorHandler(log)})
	authModule.RegisterRoutes(s.app)
	module.RegisterRoutes(s.app, authModule.GetMiddleware())
}

func TestBistroModuleSuite(t *testing.T) {
	suite.Run(t, new(BistroModuleTestSuite))
}

func (s *BistroModuleTestSuite) call(method, path, body string, cookie *http.Cookie, out interface{}) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *BistroModuleTestSuite) session(email string) *http.Cookie {
	resp := s.call(http.MethodPost, "/jwt", `{"email":"`+email+`"}`, nil, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	s.FailNow("no session cookie")
	return nil
}

func (s *BistroModuleTestSuite) TestFirstAdminScenario() {
	token := s.session("a@x.com")

	var created map[string]interface{}
	resp := s.call(http.MethodPost, "/users", `{"email":"a@x.com","role":"user"}`, nil, &created)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	id, ok := created["insertedId"].(string)
	s.Require().True(ok)

	resp = s.call(http.MethodGet, "/admin-stat", "", token, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	var promoted map[string]interface{}
	resp = s.call(http.MethodPatch, "/users/admin/"+id, "", token, &promoted)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(float64(1), promoted["modifiedCount"])

	var stats map[string]interface{}
	resp = s.call(http.MethodGet, "/admin-stat", "", token, &stats)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(map[string]interface{}{"user": float64(1), "products": float64(0), "orders": float64(0), "revenue": float64(0)}, stats)

	var admin map[string]interface{}
	s.call(http.MethodGet, "/users/admin/a@x.com", "", token, &admin)
	s.Equal(true, admin["admin"])
}

func (s *BistroModuleTestSuite) TestBootstrapClosesAfterFirstAdmin() {
	first := s.session("first@x.com")
	second := s.session("second@x.com")

	var a, b map[string]interface{}
	s.call(http.MethodPost, "/users", `{"email":"first@x.com"}`, nil, &a)
	s.call(http.MethodPost, "/users", `{"email":"second@x.com"}`, nil, &b)

	resp := s.call(http.MethodPatch, "/users/admin/"+a["insertedId"].(string), "", first, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.call(http.MethodPatch, "/users/admin/"+b["insertedId"].(string), "", second, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *BistroModuleTestSuite) TestCreateUserTwice() {
	var first, second map[string]interface{}
	s.call(http.MethodPost, "/users", `{"email":"dup@x.com","name":"Dup"}`, nil, &first)
	s.call(http.MethodPost, "/users", `{"email":"dup@x.com","name":"Dup"}`, nil, &second)

	s.NotNil(first["insertedId"])
	s.Equal("Your Email Already exist", second["message"])
	s.Nil(second["insertedId"])

	n, err := s.store.Users().Count(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *BistroModuleTestSuite) TestPaymentClearsListedCarts() {
	token := s.session("buyer@x.com")

	var ids []string
	for i := 0; i < 3; i++ {
		var res map[string]interface{}
		resp := s.call(http.MethodPost, "/carts", `{"menuId":"m1","name":"Soup","price":14}`, token, &res)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		ids = append(ids, res["insertedId"].(string))
	}

	body := `{"price":42,"transactionId":"pi_1","cartIds":["` + ids[0] + `","` + ids[1] + `"],"menuItemIds":["m1","m1"]}`
	var result map[string]map[string]interface{}
	resp := s.call(http.MethodPost, "/payments", body, token, &result)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(float64(2), result["deleteResult"]["deletedCount"])
	s.NotNil(result["paymentResult"]["insertedId"])

	var carts []map[string]interface{}
	s.call(http.MethodGet, "/carts?email=buyer@x.com", "", token, &carts)
	s.Require().Len(carts, 1)
	s.Equal(ids[2], carts[0]["_id"])

	var history []map[string]interface{}
	s.call(http.MethodGet, "/payments/buyer@x.com", "", token, &history)
	s.Require().Len(history, 1)
	s.Equal("pending", history[0]["status"])

	revenue, err := s.store.Payments().Revenue(context.Background())
	s.Require().NoError(err)
	s.InDelta(42.0, revenue, 0.0001)
}

func (s *BistroModuleTestSuite) TestPaymentIntentWithoutProvider() {
	token := s.session("buyer@x.com")
	resp := s.call(http.MethodPost, "/create-payment-intent", `{"price":10}`, token, nil)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func (s *BistroModuleTestSuite) TestDeletedAdminLosesAccessImmediately() {
	token := s.session("boss@x.com")
	var created map[string]interface{}
	s.call(http.MethodPost, "/users", `{"email":"boss@x.com"}`, nil, &created)
	s.Require().Equal(http.StatusOK, s.call(http.MethodPatch, "/users/admin/"+created["insertedId"].(string), "", token, nil).StatusCode)
	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, "/users", "", token, nil).StatusCode)

	resp := s.call(http.MethodDelete, "/users/"+created["insertedId"].(string), "", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.call(http.MethodGet, "/users", "", token, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}
