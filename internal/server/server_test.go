package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/douessay/internal/agreement"
	"github.com/ppiankov/douessay/internal/license"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/pipeline"
)

const essay = `In this essay, I will argue that schools should start later. I believe teenagers need more sleep, and there are several reasons for this.

Firstly, research shows that 70% of teenagers sleep less than eight hours. For example, a study by the National Sleep Foundation in 2019 found that tired students perform worse.

In conclusion, later start times would improve learning. Ultimately, I believe this change can be applied in our community.`

func newTestServer(t *testing.T, store license.Store, enforce bool) http.Handler {
	t.Helper()
	cfg := model.DefaultConfig().Server
	cfg.RequireLicense = enforce
	return New(pipeline.NewGrader(nil), store, cfg, nil).Router()
}

func post(t *testing.T, h http.Handler, path string, body interface{}, key string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(LicenseHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, nil, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGrade(t *testing.T) {
	h := newTestServer(t, nil, false)
	rec := post(t, h, "/v1/grade", map[string]interface{}{"text": essay, "grade": "Grade 11"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.GradingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.GradeLevel(11), res.GradeLevel)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 100.0)
	assert.NotEmpty(t, res.Feedback)
	assert.NotEmpty(t, res.RequestID)
}

func TestGrade_BadRequests(t *testing.T) {
	h := newTestServer(t, nil, false)

	req := httptest.NewRequest(http.MethodPost, "/v1/grade", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/v1/grade", map[string]string{"text": "   "}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestGrade_BodyLimit(t *testing.T) {
	cfg := model.DefaultConfig().Server
	cfg.MaxBodyBytes = 64
	h := New(pipeline.NewGrader(nil), nil, cfg, nil).Router()

	rec := post(t, h, "/v1/grade", map[string]string{"text": essay}, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAssess(t *testing.T) {
	h := newTestServer(t, nil, false)
	body := map[string]interface{}{
		"text":            essay,
		"grade":           10,
		"teacher_targets": map[string]interface{}{"scores": map[string]float64{"Content": 8}},
	}
	rec := post(t, h, "/v1/assess", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	require.NotNil(t, a.Alignment)
	assert.Contains(t, a.Alignment.Factors, model.FactorContent)
	assert.InDelta(t, a.Score/100, a.Overall, 1e-9)
}

func TestAgreement(t *testing.T) {
	h := newTestServer(t, nil, false)
	body := map[string]interface{}{
		"text":                 essay,
		"grade":                10,
		"teacher":              map[string]interface{}{"score": 78},
		"teacher_rubric_level": "Level 3",
	}
	rec := post(t, h, "/v1/agreement", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Report       agreement.Report  `json:"report"`
		TeacherLevel model.RubricLevel `json:"teacher_rubric_level"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.Level3, resp.TeacherLevel.Level)
	assert.Equal(t, 78.0, resp.TeacherLevel.Score)
	assert.Equal(t, model.Level3, resp.Report.TeacherLevel)
	assert.GreaterOrEqual(t, resp.Report.AbsoluteError, 0.0)
}

func TestLicenseEnforcement(t *testing.T) {
	ctx := context.Background()
	store := license.NewMemoryStore()
	require.NoError(t, store.Add(ctx, "free", license.TierFree))
	require.NoError(t, store.Add(ctx, "teacher", license.TierTeacher))
	h := newTestServer(t, store, true)

	body := map[string]interface{}{"text": essay}

	rec := post(t, h, "/v1/grade", body, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "license key required")

	rec = post(t, h, "/v1/grade", body, "bogus")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for i := 0; i < 5; i++ {
		rec = post(t, h, "/v1/grade", body, "free")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
	rec = post(t, h, "/v1/grade", body, "free")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	v, err := store.Validate(ctx, "free")
	require.NoError(t, err)
	assert.Equal(t, 5, v.DailyUsage)
}

func TestLicenseFailedRequestsAreNotCounted(t *testing.T) {
	ctx := context.Background()
	store := license.NewMemoryStore()
	require.NoError(t, store.Add(ctx, "student", license.TierStudent))
	h := newTestServer(t, store, true)

	rec := post(t, h, "/v1/grade", map[string]string{"text": ""}, "student")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	v, err := store.Validate(ctx, "student")
	require.NoError(t, err)
	assert.Equal(t, 0, v.DailyUsage)
}

func TestFeatureGating(t *testing.T) {
	ctx := context.Background()
	store := license.NewMemoryStore()
	require.NoError(t, store.Add(ctx, "free", license.TierFree))
	require.NoError(t, store.Add(ctx, "teacher", license.TierTeacher))
	h := newTestServer(t, store, true)

	body := map[string]interface{}{"text": essay}

	rec := post(t, h, "/v1/assess", body, "free")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), license.FeatureAssessment)

	rec = post(t, h, "/v1/assess", body, "teacher")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, h, "/v1/agreement", body, "teacher")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLicenseDisabledWithoutStore(t *testing.T) {
	h := newTestServer(t, nil, true)
	rec := post(t, h, "/v1/grade", map[string]string{"text": essay}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
