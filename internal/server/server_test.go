package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	blogdomain "github.com/agrilinklabs/agrilink/internal/blog/domain"
	"github.com/agrilinklabs/agrilink/internal/config"
	obsmetrics "github.com/agrilinklabs/agrilink/internal/observability/metrics"
	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	quotedomain "github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const testAdminKey = "test-admin-key"

type pricingStub struct {
	snapshot   pricingdomain.Snapshot
	commitErr  error
	refreshed  int
	edits      []string
	cancels    []string
	commitKeys []string
}

func (p *pricingStub) Refresh(ctx context.Context) error {
	p.refreshed++
	return nil
}

func (p *pricingStub) Snapshot(ctx context.Context) (*pricingdomain.Snapshot, error) {
	snap := p.snapshot
	return &snap, nil
}

func (p *pricingStub) RecordPendingEdit(dimension pricingdomain.Dimension, key, rawValue string) {
	p.edits = append(p.edits, string(dimension)+"/"+key+"="+rawValue)
}

func (p *pricingStub) CommitEdit(ctx context.Context, dimension pricingdomain.Dimension, key string) error {
	p.commitKeys = append(p.commitKeys, string(dimension)+"/"+key)
	return p.commitErr
}

func (p *pricingStub) CancelEdit(dimension pricingdomain.Dimension, key string) {
	p.cancels = append(p.cancels, string(dimension)+"/"+key)
}

func (p *pricingStub) RatesFor(ctx context.Context, rank ruledomain.ActorRank, spec ruledomain.Specialization, level ruledomain.ExperienceLevel, unit ruledomain.SurfaceUnit) (*pricingdomain.Rates, error) {
	return nil, pricingdomain.ErrRateNotFound
}

type quoteStub struct {
	estimate *quotedomain.Estimate
	err      error
}

func (q *quoteStub) Estimate(ctx context.Context, req quotedomain.Request) (*quotedomain.Estimate, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.estimate, nil
}

type blogStub struct {
	posts map[string]blogdomain.Post
}

func (b *blogStub) Create(ctx context.Context, req blogdomain.CreatePostRequest) (blogdomain.Post, error) {
	return blogdomain.Post{}, nil
}

func (b *blogStub) GetByID(ctx context.Context, id string) (blogdomain.Post, error) {
	return blogdomain.Post{}, blogdomain.ErrNotFound
}

func (b *blogStub) GetBySlug(ctx context.Context, slug string) (blogdomain.Post, error) {
	post, ok := b.posts[slug]
	if !ok {
		return blogdomain.Post{}, blogdomain.ErrNotFound
	}
	return post, nil
}

func (b *blogStub) List(ctx context.Context, req blogdomain.ListPostRequest) (blogdomain.ListPostResponse, error) {
	return blogdomain.ListPostResponse{}, nil
}

func (b *blogStub) Update(ctx context.Context, req blogdomain.UpdatePostRequest) (blogdomain.Post, error) {
	return blogdomain.Post{}, blogdomain.ErrNotFound
}

func (b *blogStub) Delete(ctx context.Context, id string) error {
	return blogdomain.ErrNotFound
}

type serverStubs struct {
	pricing *pricingStub
	quote   *quoteStub
	blog    *blogStub
}

func newTestServer(t *testing.T) (*Server, *serverStubs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	stubs := &serverStubs{
		pricing: &pricingStub{},
		quote:   &quoteStub{},
		blog:    &blogStub{posts: map[string]blogdomain.Post{}},
	}

	srv := &Server{
		engine:     r,
		cfg:        config.Config{AdminAPIKey: testAdminKey},
		pricingSvc: stubs.pricing,
		quoteSvc:   stubs.quote,
		blogSvc:    stubs.blog,
	}
	srv.registerPublicRoutes()
	srv.registerAdminRoutes()

	return srv, stubs
}

func doRequest(t *testing.T, srv *Server, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+testAdminKey)
	}

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireKey(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/admin/pricing", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/pricing", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/admin/pricing", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesDisabledWithoutConfiguredKey(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.cfg.AdminAPIKey = ""

	w := doRequest(t, srv, http.MethodGet, "/admin/pricing", "", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecordPricingEditEchoesPendingState(t *testing.T) {
	srv, stubs := newTestServer(t)
	stubs.pricing.snapshot = pricingdomain.Snapshot{
		Pending: []pricingdomain.PendingEdit{
			{
				Dimension: pricingdomain.DimensionSpecialization,
				Key:       "worker-harvest_hand",
				Value:     1200,
				State:     pricingdomain.StatePending,
			},
		},
	}

	w := doRequest(t, srv, http.MethodPut, "/admin/pricing/specialization/worker-harvest_hand", `{"value":"1200"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Key   string  `json:"key"`
			Value float64 `json:"value"`
			State string  `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "worker-harvest_hand", resp.Data.Key)
	assert.Equal(t, float64(1200), resp.Data.Value)
	assert.Equal(t, "pending", resp.Data.State)
	assert.Equal(t, []string{"specialization/worker-harvest_hand=1200"}, stubs.pricing.edits)
}

func TestRecordPricingEditDroppedValueReportsClean(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodPut, "/admin/pricing/specialization/worker-harvest_hand", `{"value":"garbage"}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "clean", resp.Data.State)
}

func TestRecordPricingEditUnknownDimension(t *testing.T) {
	srv, stubs := newTestServer(t)

	w := doRequest(t, srv, http.MethodPut, "/admin/pricing/bogus/worker-harvesting", `{"value":"1200"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stubs.pricing.edits)
}

func TestCommitPricingEditConflictWhileInFlight(t *testing.T) {
	srv, stubs := newTestServer(t)
	stubs.pricing.commitErr = pricingdomain.ErrCommitInFlight

	w := doRequest(t, srv, http.MethodPost, "/admin/pricing/surface/hectares/commit", "", true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCommitPricingEditStoreFailure(t *testing.T) {
	srv, stubs := newTestServer(t)
	stubs.pricing.commitErr = pricingdomain.ErrCommitFailed

	w := doRequest(t, srv, http.MethodPost, "/admin/pricing/surface/hectares/commit", "", true)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCommitPricingEditCountedOnce(t *testing.T) {
	srv, stubs := newTestServer(t)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := obsmetrics.New(obsmetrics.Config{ServiceName: "agrilink-test"}, provider)
	require.NoError(t, err)
	srv.obsMetrics = m

	w := doRequest(t, srv, http.MethodPost, "/admin/pricing/surface/hectares/commit", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	stubs.pricing.commitErr = pricingdomain.ErrCommitInFlight
	w = doRequest(t, srv, http.MethodPost, "/admin/pricing/surface/hectares/commit", "", true)
	require.Equal(t, http.StatusConflict, w.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, metric := range scope.Metrics {
			if metric.Name != "agrilink_pricing_commits_total" {
				continue
			}
			sum, ok := metric.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value("outcome")
				counts[outcome.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"success": 1, "in_flight": 1}, counts)
}

func TestRefreshPricingRebuildsViews(t *testing.T) {
	srv, stubs := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/admin/pricing/refresh", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stubs.pricing.refreshed)
}

func TestCreateQuoteReturnsEstimate(t *testing.T) {
	srv, stubs := newTestServer(t)
	stubs.quote.estimate = &quotedomain.Estimate{
		Subtotal: decimal.RequireFromString("1500"),
		Total:    decimal.RequireFromString("1500"),
		Currency: "EUR",
	}

	body := `{
		"actor_rank": "worker",
		"specialization": "harvest_hand",
		"experience_level": "starter",
		"surface_unit": "hectares",
		"surface_area": 10
	}`
	w := doRequest(t, srv, http.MethodPost, "/api/quotes", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1500", resp.Data.Total)
	assert.Equal(t, "EUR", resp.Data.Currency)
}

func TestCreateQuoteRejectsInvalidProfile(t *testing.T) {
	srv, stubs := newTestServer(t)
	stubs.quote.err = quotedomain.ErrInvalidRequest

	body := `{
		"actor_rank": "worker",
		"specialization": "agronomy",
		"experience_level": "starter",
		"surface_unit": "hectares"
	}`
	w := doRequest(t, srv, http.MethodPost, "/api/quotes", body, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQuoteRejectsMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/quotes", `{"actor_rank":`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPostBySlugHidesDrafts(t *testing.T) {
	srv, stubs := newTestServer(t)
	stubs.blog.posts["hidden-draft"] = blogdomain.Post{Slug: "hidden-draft", Published: false}
	stubs.blog.posts["field-guide"] = blogdomain.Post{Slug: "field-guide", Published: true}

	w := doRequest(t, srv, http.MethodGet, "/api/posts/hidden-draft", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/posts/field-guide", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCancelPricingEdit(t *testing.T) {
	srv, stubs := newTestServer(t)

	w := doRequest(t, srv, http.MethodDelete, "/admin/pricing/experience/worker-starter", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"experience/worker-starter"}, stubs.pricing.cancels)
}
