package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/skinbox/boxes"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/orders"
	"github.com/raushankrgupta/skinbox/recommender"
	"github.com/raushankrgupta/skinbox/service"
	"github.com/raushankrgupta/skinbox/session"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRecommender struct {
	ids []string
	err error
}

func (f fixedRecommender) Recommend(context.Context, models.DiagnosticProfile, []models.CatalogItem) (models.Recommendation, error) {
	if f.err != nil {
		return models.Recommendation{}, f.err
	}
	return models.Recommendation{Analysis: "ok", ProductIDs: f.ids}, nil
}

type testServer struct {
	handler http.Handler
	gateway storage.Gateway
	tokens  *utils.TokenIssuer
}

func newTestServer(t *testing.T, rec service.Recommender) *testServer {
	t.Helper()
	gw := storage.NewKVGateway(storage.NewMemoryKV())
	assembler := boxes.NewAssembler(gw, zerolog.Nop())
	tokens, err := utils.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	return &testServer{
		handler: NewRouter(Deps{
			Gateway:  gw,
			Boxes:    service.NewBoxService(gw, rec, assembler, nil, zerolog.Nop()),
			Statuses: assembler,
			Orders:   orders.NewHandoff(orders.Config{ManagerPhone: "79990000000"}, nil, assembler, zerolog.Nop()),
			Auth:     session.EmailConvention{},
			Tokens:   tokens,
			Logger:   zerolog.Nop(),
		}),
		gateway: gw,
		tokens:  tokens,
	}
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: email})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t, fixedRecommender{ids: []string{"p1"}})

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/auth/me", "garbage", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/auth/login", "", LoginRequest{}).Code)

	token := s.login(t, "admin@skinbox.ru")
	rec := s.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[models.SessionIdentity](t, rec)
	assert.Equal(t, models.RoleAdmin, me.Role)
	assert.Equal(t, "admin-id", me.ID)
}

func TestCatalogIsPublicAndSeeded(t *testing.T) {
	s := newTestServer(t, fixedRecommender{})

	rec := s.do(t, http.MethodGet, "/catalog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]models.CatalogItem](t, rec)
	require.Len(t, items, 8)
	assert.Equal(t, "p1", items[0].ID)
}

func TestCatalogManagementRequiresAdmin(t *testing.T) {
	s := newTestServer(t, fixedRecommender{})
	item := models.CatalogItem{ID: "p9", Name: "Тоник", Category: models.CategoryOther, Price: 700}

	user := s.login(t, "anna@example.com")
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/catalog", user, item).Code)

	admin := s.login(t, "admin@skinbox.ru")
	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/catalog", admin, item).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/catalog", admin, item).Code)

	item.Price = 800
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/catalog/p9", admin, item).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/catalog/p404", admin, item).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/catalog", admin, models.CatalogItem{Name: "x", Category: "mask"}).Code)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/catalog/p9", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/catalog/p9", admin, nil).Code)
	assert.Equal(t, http.StatusNotImplemented, s.do(t, http.MethodPost, "/catalog/import", admin, ImportRequest{URL: "https://shop.example/p"}).Code)
}

func TestGenerateBox(t *testing.T) {
	s := newTestServer(t, fixedRecommender{ids: []string{"p1", "pX", "p3", "p5"}})
	token := s.login(t, "anna@example.com")

	rec := s.do(t, http.MethodPost, "/boxes", token, GenerateRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/boxes", token, GenerateRequest{SkinType: models.SkinTypeDry, Concerns: []string{models.Concerns[0]}})
	require.Equal(t, http.StatusCreated, rec.Code)
	box := decode[models.Box](t, rec)
	assert.Equal(t, int64(900+850+1100), box.TotalPrice)
	assert.Len(t, box.Products, 3)
	assert.Equal(t, models.BoxStatusCreated, box.Status)

	rec = s.do(t, http.MethodGet, "/boxes/"+box.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	other := s.login(t, "boris@example.com")
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/boxes/"+box.ID, other, nil).Code)
	assert.Empty(t, decode[[]models.Box](t, s.do(t, http.MethodGet, "/boxes", other, nil)))

	admin := s.login(t, "admin@skinbox.ru")
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/boxes/"+box.ID, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/boxes/"+box.ID+"/photo", token, nil).Code)
}

func TestGenerateBoxRejectsBadPhoto(t *testing.T) {
	s := newTestServer(t, fixedRecommender{ids: []string{"p1"}})
	token := s.login(t, "anna@example.com")

	rec := s.do(t, http.MethodPost, "/boxes", token, GenerateRequest{SkinType: models.SkinTypeDry, Photo: "data:text/plain;base64,aGk="})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateBoxFailureIsGeneric(t *testing.T) {
	s := newTestServer(t, fixedRecommender{err: recommender.Failed(errors.New("upstream quota exceeded"))})
	token := s.login(t, "anna@example.com")

	rec := s.do(t, http.MethodPost, "/boxes", token, GenerateRequest{SkinType: models.SkinTypeOily})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, recommender.ErrGenerationFailed.Error(), body["error"])
	assert.NotContains(t, rec.Body.String(), "quota")
}

func TestListBoxesNewestFirst(t *testing.T) {
	s := newTestServer(t, fixedRecommender{ids: []string{"p2"}})
	token := s.login(t, "anna@example.com")

	var ids []string
	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/boxes", token, GenerateRequest{SkinType: models.SkinTypeNormal})
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[models.Box](t, rec).ID)
		time.Sleep(2 * time.Millisecond)
	}

	mine := decode[[]models.Box](t, s.do(t, http.MethodGet, "/boxes", token, nil))
	require.Len(t, mine, 3)
	assert.Equal(t, ids[2], mine[0].ID)
	assert.Equal(t, ids[0], mine[2].ID)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/admin/boxes", token, nil).Code)
	admin := s.login(t, "admin@skinbox.ru")
	all := decode[[]models.Box](t, s.do(t, http.MethodGet, "/admin/boxes", admin, nil))
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
}

func TestOrderAndStatus(t *testing.T) {
	s := newTestServer(t, fixedRecommender{ids: []string{"p1", "p4"}})
	token := s.login(t, "anna@example.com")
	box := decode[models.Box](t, s.do(t, http.MethodPost, "/boxes", token, GenerateRequest{SkinType: models.SkinTypeDry}))

	rec := s.do(t, http.MethodPost, "/boxes/"+box.ID+"/order", token, models.OrderContact{Name: "Анна"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/boxes/"+box.ID+"/order", token, models.OrderContact{Name: "Анна", Phone: "+79001234567", Address: "Москва"})
	require.Equal(t, http.StatusOK, rec.Code)
	order := decode[orders.Order](t, rec)
	assert.True(t, strings.HasPrefix(order.Link, "https://wa.me/79990000000?text="))
	assert.Equal(t, models.BoxStatusCreated, order.Status)

	admin := s.login(t, "admin@skinbox.ru")
	path := "/admin/boxes/" + box.ID + "/status"
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, path, admin, StatusRequest{Status: "completed"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, path, admin, StatusRequest{Status: "lost"}).Code)
	rec = s.do(t, http.MethodPost, path, admin, StatusRequest{Status: "ordered"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.BoxStatusOrdered, decode[models.Box](t, rec).Status)

	stored, err := s.gateway.GetBox(context.Background(), box.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BoxStatusOrdered, stored.Status)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/admin/boxes/missing/status", admin, StatusRequest{Status: "ordered"}).Code)
}
