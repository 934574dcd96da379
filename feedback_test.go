package otffeedback

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const feedbackBody = `{
	"case": {
		"id": "sugar-tax",
		"title": "Sugar tax",
		"paperType": "Paper 1",
		"commandTerm": "Explain",
		"caseText": ["A tax on sugary drinks was introduced.", "Prices rose by 20%."],
		"dataTable": "__JSON__:{\"headers\":[\"Year\",\"Price\"],\"rows\":[[\"2020\",1.2]]}",
		"toolkit": ["PED", "Incidence"],
		"questions": [
			{"text": "Explain the price elasticity of demand for sugary drinks.", "marks": 4},
			{"text": "Using a diagram, explain the incidence of the tax.", "marks": 10}
		]
	},
	"answers": ["PED is low.", ""],
	"rawScore": {"perQuestion": [{"marks": 4, "comments": "Accurate."}, {"marks": 9}], "overall": {"percent": 93}}
}`

func newTestService(t *testing.T, opts ...Option) *OtfFeedbackService {
	t.Helper()
	opts = append([]Option{Name("test"), ID("test-id"), Host("localhost"), Port(0)}, opts...)
	srvc, err := New(opts...)
	require.NoError(t, err)
	return srvc
}

func serve(srvc *OtfFeedbackService, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srvc.e.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := serve(newTestService(t), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDescriptors(t *testing.T) {
	rec := serve(newTestService(t), http.MethodGet, "/descriptors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(gjson.Get(rec.Body.String(), "7").String(), "Excellent"))
}

func TestFeedback(t *testing.T) {
	rec := serve(newTestService(t), http.MethodPost, "/feedback", feedbackBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := gjson.Parse(rec.Body.String())
	assert.Equal(t, "sugar-tax", body.Get("caseID").String())
	assert.Equal(t, "test", body.Get("feedbackServiceName").String())
	assert.NotEmpty(t, body.Get("reviewID").String())

	fb := body.Get("feedback")
	assert.Equal(t, int64(2), fb.Get("perQuestion.#").Int())
	assert.Equal(t, int64(0), fb.Get("perQuestion.1.marks").Int())
	assert.Contains(t, fb.Get("perQuestion.0.comments").String(), "Accurate.")
	assert.Contains(t, fb.Get("perQuestion.0.comments").String(), "Too short for 4 marks")
	assert.LessOrEqual(t, fb.Get("perQuestion.0.marks").Float(), 1.0)
	assert.Equal(t, float64(14), fb.Get("overall.max").Float())
	assert.Equal(t, int64(1), fb.Get("overall.ib").Int())
	assert.NotEmpty(t, fb.Get("overall.ibDescriptor").String())
	assert.Equal(t, []interface{}{"PED", "Incidence"}, fb.Get("study.toolkit").Value())

	assert.False(t, body.Get("readiness.meetsMinimum").Bool())

	cs := body.Get("case")
	assert.Equal(t, "Explain", cs.Get("commandTerm").String())
	assert.Equal(t, int64(2), cs.Get("caseText.#").Int())
	assert.Equal(t, []interface{}{"Year", "Price"}, cs.Get("dataTable.headers").Value())
	assert.Equal(t, "1.2", cs.Get("dataTable.rows.0.1").String())
	assert.False(t, cs.Get("questions").Exists())
}

func TestFeedback_BadRequests(t *testing.T) {
	srvc := newTestService(t)
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"case":`},
		{name: "no case", body: `{"answers":[]}`},
		{name: "no questions", body: `{"case":{"title":"empty"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(srvc, http.MethodPost, "/feedback", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFeedback_MissingRawScore(t *testing.T) {
	body := `{"case":{"questions":["Define PED."]},"answers":{"0":"PED is elastic."}}`
	rec := serve(newTestService(t), http.MethodPost, "/feedback", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "feedback.overall.got").Int())
	assert.Equal(t, float64(10), gjson.Get(rec.Body.String(), "feedback.overall.max").Float())
}

func TestReview_NotConfigured(t *testing.T) {
	rec := serve(newTestService(t), http.MethodPost, "/review", feedbackBody)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReview(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"perQuestion":[{"marks":3},{"marks":2}]}`))
	}))
	defer upstream.Close()

	srvc := newTestService(t, ScorerURL(upstream.URL))
	rec := serve(srvc, http.MethodPost, "/review", feedbackBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(2), gjson.Get(rec.Body.String(), "feedback.perQuestion.#").Int())
}

func TestReview_ScorerFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	srvc := newTestService(t, ScorerURL(upstream.URL))
	rec := serve(srvc, http.MethodPost, "/review", feedbackBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestOptions(t *testing.T) {
	_, err := New(Host(""))
	assert.Error(t, err)

	_, err = New(Port(70000))
	assert.Error(t, err)

	_, err = New(ScorerURL("not a url"))
	assert.Error(t, err)

	srvc, err := New(Name(""), ID(""), Host("localhost"), Port(0))
	require.NoError(t, err)
	assert.NotEmpty(t, srvc.serviceName)
	assert.NotEmpty(t, srvc.serviceID)
	assert.Greater(t, srvc.servicePort, 0)
}
