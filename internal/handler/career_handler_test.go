package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unahur-dev/academico-api/internal/models"
	"github.com/unahur-dev/academico-api/internal/service"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type fakeCareerRepo struct {
	careers   []models.Career
	total     int
	byID      *models.Career
	findErr   error
	createErr error
	deleteErr error

	lastQuery models.PageQuery
}

func (f *fakeCareerRepo) List(ctx context.Context, q models.PageQuery) ([]models.Career, int, error) {
	f.lastQuery = q
	return f.careers, f.total, nil
}

func (f *fakeCareerRepo) FindByID(ctx context.Context, id int) (*models.Career, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byID, nil
}

func (f *fakeCareerRepo) Create(ctx context.Context, career *models.Career) error {
	if f.createErr != nil {
		return f.createErr
	}
	career.ID = 7
	return nil
}

func (f *fakeCareerRepo) Update(ctx context.Context, career *models.Career) error { return nil }

func (f *fakeCareerRepo) Delete(ctx context.Context, id int) error { return f.deleteErr }

func newCareerRouter(repo *fakeCareerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCareerHandler(service.NewCareerService(repo, nil, nil, nil))
	r := gin.New()
	r.GET("/car", h.List)
	r.GET("/car/:id", h.Get)
	r.POST("/car", h.Create)
	r.PUT("/car/:id", h.Update)
	r.DELETE("/car/:id", h.Delete)
	return r
}

func TestCareerHandlerListWireShape(t *testing.T) {
	repo := &fakeCareerRepo{
		careers: []models.Career{{ID: 1, Name: "Informatica", Years: 5}},
		total:   23,
	}
	router := newCareerRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car?page=2&pageSize=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "page")
	assert.Contains(t, body, "pageSize")
	assert.Contains(t, body, "totalCarreras")
	assert.Contains(t, body, "carreras")
	assert.Equal(t, "2", string(body["page"]))
	assert.Equal(t, "5", string(body["pageSize"]))
	assert.Equal(t, "23", string(body["totalCarreras"]))
	assert.Equal(t, models.PageQuery{Page: 2, PageSize: 5}, repo.lastQuery)
}

func TestCareerHandlerListDefaults(t *testing.T) {
	repo := &fakeCareerRepo{}
	router := newCareerRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 10, body["pageSize"])
}

func TestCareerHandlerGetSpanishFields(t *testing.T) {
	repo := &fakeCareerRepo{byID: &models.Career{ID: 3, Name: "Enfermeria", Years: 4}}
	router := newCareerRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car/3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"nombre":"Enfermeria"`)
	assert.Contains(t, body, `"años":4`)
}

func TestCareerHandlerGetNotFound(t *testing.T) {
	repo := &fakeCareerRepo{findErr: sql.ErrNoRows}
	router := newCareerRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "carrera no encontrada", body["error"])
}

func TestCareerHandlerGetBadID(t *testing.T) {
	router := newCareerRouter(&fakeCareerRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCareerHandlerCreate(t *testing.T) {
	router := newCareerRouter(&fakeCareerRepo{})

	payload := strings.NewReader(`{"nombre":"Informatica","años":5}`)
	req := httptest.NewRequest(http.MethodPost, "/car", payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body["id"])
}

func TestCareerHandlerCreateDuplicate(t *testing.T) {
	dup := appErrors.Clone(appErrors.ErrDuplicate, "existe otra carrera con el mismo nombre")
	router := newCareerRouter(&fakeCareerRepo{createErr: dup})

	payload := strings.NewReader(`{"nombre":"Informatica","años":5}`)
	req := httptest.NewRequest(http.MethodPost, "/car", payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "existe otra carrera con el mismo nombre", body["error"])
}

func TestCareerHandlerCreateInvalidBody(t *testing.T) {
	router := newCareerRouter(&fakeCareerRepo{})

	req := httptest.NewRequest(http.MethodPost, "/car", strings.NewReader(`{"años":5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCareerHandlerDelete(t *testing.T) {
	router := newCareerRouter(&fakeCareerRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/car/4", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCareerHandlerDeleteNotFound(t *testing.T) {
	router := newCareerRouter(&fakeCareerRepo{deleteErr: sql.ErrNoRows})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/car/4", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
