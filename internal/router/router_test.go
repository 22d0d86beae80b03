package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/events"
	"github.com/javajoker/storefront/internal/handlers"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/repository/mocks"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type RouterTestSuite struct {
	suite.Suite
	cfg        *config.Config
	products   *mocks.ProductRepository
	categories *mocks.CategoryRepository
	users      *mocks.UserRepository
	engine     *gin.Engine
	adminToken string
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.cfg = &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{RateLimit: false},
		JWT:         config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: 1},
		Auth:        config.AuthConfig{Enforce: true},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
		Upload: config.UploadConfig{
			MaxFileMB:     1,
			LocalDir:      s.T().TempDir(),
			PublicBaseURL: "http://cdn.test/uploads/",
		},
		Stats: config.StatsConfig{PlatformFeePercent: 10, CacheSeconds: 60},
	}
	utils.SetJWTSecret(s.cfg.JWT.SecretKey)

	s.products = new(mocks.ProductRepository)
	s.categories = new(mocks.CategoryRepository)
	s.users = new(mocks.UserRepository)
	s.products.On("IncrementViews", mock.Anything, mock.Anything).Return(nil).Maybe()

	storage, err := services.NewStorageService(s.cfg)
	s.Require().NoError(err)

	noop := cache.NewNoopCache()
	publisher := events.NewNoopPublisher()
	s.engine = New(s.cfg, Handlers{
		Product:  handlers.NewProductHandler(services.NewProductService(s.products, s.categories, noop, publisher, time.Minute)),
		Category: handlers.NewCategoryHandler(services.NewCategoryService(s.categories, publisher)),
		Upload:   handlers.NewUploadHandler(storage, s.cfg.Upload.MaxFileMB),
		Auth:     handlers.NewAuthHandler(services.NewAuthService(s.users, s.cfg)),
		Stats:    handlers.NewStatsHandler(services.NewStatsService(s.products, noop, s.cfg.Stats.PlatformFeePercent, time.Minute)),
	})

	token, err := utils.GenerateJWT("admin-1", "Admin", string(models.RoleAdmin), 1)
	s.Require().NoError(err)
	s.adminToken = "Bearer " + token
}

func (s *RouterTestSuite) TearDownTest() {
	s.products.AssertExpectations(s.T())
	s.categories.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
}

func (s *RouterTestSuite) do(method, path, body string, admin bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", s.adminToken)
	}
	return s.serve(req)
}

func (s *RouterTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func sampleProduct() *models.Product {
	return &models.Product{
		BaseModel:     models.BaseModel{ID: "p-1"},
		Title:         "Batik Shirt",
		Image:         "https://cdn.test/a.jpg",
		Images:        models.StringList{"https://cdn.test/a.jpg"},
		Price:         50000,
		OriginalPrice: 62500,
		Discount:      20,
		CategoryID:    "c-1",
		CategoryName:  "Fashion",
		Status:        models.ProductStatusOnline,
		Rating:        5,
	}
}

func (s *RouterTestSuite) TestListProductsEmitsBothAliases() {
	s.products.On("List", mock.Anything, repository.ProductFilter{Category: "Fashion", Limit: 20, Sort: "created_at", Order: "desc"}).
		Return([]models.Product{*sampleProduct()}, int64(1), nil).Once()

	w, body := s.do(http.MethodGet, "/api/products?category=Fashion", "", false)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])
	items := body["data"].([]interface{})
	s.Require().Len(items, 1)
	item := items[0].(map[string]interface{})
	s.Equal(float64(62500), item["originalPrice"])
	s.Equal(float64(62500), item["original_price"])
	s.Equal("Fashion", item["category"])
}

func (s *RouterTestSuite) TestGetMissingProduct() {
	s.products.On("GetByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound).Once()

	w, body := s.do(http.MethodGet, "/api/products?id=nope", "", false)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(false, body["success"])
	s.Equal("Product not found", body["error"])
}

func (s *RouterTestSuite) TestMutationsRequireAdmin() {
	w, body := s.do(http.MethodPost, "/api/products", `{"title":"x"}`, false)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(false, body["success"])

	w, _ = s.do(http.MethodDelete, "/api/categories?id=c-1", "", false)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/upload", "", false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestCreateProductMissingFields() {
	w, body := s.do(http.MethodPost, "/api/products", `{"title":"Mug","price":"0"}`, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Missing title, image or price", body["error"])
}

func (s *RouterTestSuite) TestCreateProductAcceptsSnakeCase() {
	s.categories.On("GetByName", mock.Anything, "Fashion").
		Return(&models.Category{BaseModel: models.BaseModel{ID: "c-1"}, Name: "Fashion"}, nil).Once()
	s.products.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.OriginalPrice == 62500 && p.Image == "https://cdn.test/a.jpg"
	})).Return(nil).Once()

	payload := `{"title":"Batik Shirt","price":"50000","discount":20,` +
		`"images":"[\"https://cdn.test/a.jpg\"]","category_name":"Fashion"}`
	w, body := s.do(http.MethodPost, "/api/products", payload, true)

	s.Equal(http.StatusCreated, w.Code)
	data := body["data"].(map[string]interface{})
	s.Equal(float64(62500), data["originalPrice"])
	s.Equal("c-1", data["category_id"])
}

func (s *RouterTestSuite) TestUpdateProductRequiresID() {
	w, body := s.do(http.MethodPut, "/api/products", `{"title":"x"}`, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Missing id", body["error"])
}

func (s *RouterTestSuite) TestDeleteProduct() {
	s.products.On("Delete", mock.Anything, "p-1").Return(nil).Once()

	w, body := s.do(http.MethodDelete, "/api/products?id=p-1", "", true)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["deleted"])
	s.Equal("p-1", body["id"])
}

func (s *RouterTestSuite) TestCategoryConflicts() {
	s.categories.On("GetByName", mock.Anything, "Fashion").
		Return(&models.Category{BaseModel: models.BaseModel{ID: "c-1"}, Name: "Fashion"}, nil).Once()
	s.categories.On("DeleteIfUnreferenced", mock.Anything, "c-1").Return(repository.ErrReferenced).Once()

	w, body := s.do(http.MethodPost, "/api/categories", `{"name":"Fashion"}`, true)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Category already exists", body["error"])

	w, body = s.do(http.MethodDelete, "/api/categories?id=c-1", "", true)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Category is still used by products", body["error"])
}

func (s *RouterTestSuite) TestLoginFailuresAreIndistinguishable() {
	stored := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Email: "admin@shop.test", Role: models.RoleAdmin}
	stored.SetPassword("correct horse")

	s.users.On("GetByEmail", mock.Anything, "ghost@shop.test").Return(nil, repository.ErrNotFound).Once()
	s.users.On("GetByEmail", mock.Anything, "admin@shop.test").Return(stored, nil).Once()

	missing, missingBody := s.do(http.MethodPost, "/api/login", `{"email":"ghost@shop.test","password":"whatever"}`, false)
	wrong, wrongBody := s.do(http.MethodPost, "/api/login", `{"email":"admin@shop.test","password":"wrong"}`, false)

	s.Equal(http.StatusUnauthorized, missing.Code)
	s.Equal(missing.Code, wrong.Code)
	s.Equal("Invalid credentials", missingBody["error"])
	s.Equal(missingBody, wrongBody)
}

func (s *RouterTestSuite) TestLoginReturnsUserWithoutSecret() {
	stored := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Name: "Admin", Email: "admin@shop.test", Role: models.RoleAdmin}
	stored.SetPassword("correct horse")

	s.users.On("GetByEmail", mock.Anything, "admin@shop.test").Return(stored, nil).Once()
	s.users.On("TouchLogin", mock.Anything, "u-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	w, body := s.do(http.MethodPost, "/api/login", `{"email":"admin@shop.test","password":"correct horse"}`, false)

	s.Equal(http.StatusOK, w.Code)
	user := body["user"].(map[string]interface{})
	s.Equal("admin", user["role"])
	s.NotContains(user, "passwordHash")
	s.NotContains(user, "password")
	s.NotEmpty(body["token"])
}

func (s *RouterTestSuite) TestStatsFallBackToZeros() {
	s.products.On("Totals", mock.Anything).Return(models.CatalogTotals{}, errors.New("connection refused")).Once()

	w, body := s.do(http.MethodGet, "/api/stats", "", false)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])
	data := body["data"].(map[string]interface{})
	s.Equal(float64(0), data["netSales"])
	s.Equal(float64(0), data["totalOrders"])
}

func (s *RouterTestSuite) TestUploadWithoutFiles() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	s.Require().NoError(mw.WriteField("note", "nothing attached"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", s.adminToken)
	w, body := s.serve(req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No files uploaded", body["error"])
}

func (s *RouterTestSuite) TestUploadKeepsInputOrder() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"Front View.JPG", "back.png"} {
		part, err := mw.CreateFormFile("files", name)
		s.Require().NoError(err)
		_, err = part.Write([]byte("image bytes"))
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", s.adminToken)
	w, body := s.serve(req)

	s.Equal(http.StatusOK, w.Code)
	urls := body["data"].([]interface{})
	s.Require().Len(urls, 2)
	s.True(strings.HasPrefix(urls[0].(string), "http://cdn.test/uploads/"))
	s.True(strings.HasSuffix(urls[0].(string), "-frontview.jpg"))
	s.True(strings.HasSuffix(urls[1].(string), "-back.png"))

	entries, err := os.ReadDir(s.cfg.Upload.LocalDir)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *RouterTestSuite) TestUploadRejectsOversizedBatch() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "huge.mp4")
	s.Require().NoError(err)
	_, err = part.Write(bytes.Repeat([]byte{0}, 2<<20))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", s.adminToken)
	w, body := s.serve(req)

	s.Equal(http.StatusRequestEntityTooLarge, w.Code)
	s.Equal("File exceeds the 1 MB limit", body["error"])

	matches, _ := filepath.Glob(filepath.Join(s.cfg.Upload.LocalDir, "*"))
	s.Empty(matches)
}

func (s *RouterTestSuite) TestMetricsEndpoint() {
	w, _ := s.do(http.MethodGet, "/metrics", "", false)
	s.Equal(http.StatusOK, w.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestAuthNotEnforced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Auth: config.AuthConfig{Enforce: false},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	products := new(mocks.ProductRepository)
	products.On("Delete", mock.Anything, "p-9").Return(nil).Once()

	noop := cache.NewNoopCache()
	r := New(cfg, Handlers{
		Product:  handlers.NewProductHandler(services.NewProductService(products, new(mocks.CategoryRepository), noop, events.NewNoopPublisher(), time.Minute)),
		Category: handlers.NewCategoryHandler(services.NewCategoryService(new(mocks.CategoryRepository), events.NewNoopPublisher())),
		Upload:   handlers.NewUploadHandler(nil, 80),
		Auth:     handlers.NewAuthHandler(services.NewAuthService(nil, cfg)),
		Stats:    handlers.NewStatsHandler(services.NewStatsService(products, noop, 0, time.Minute)),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/products?id=p-9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	products.AssertExpectations(t)

	// A missing user store is reported as bad credentials
	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
