package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"salesdash/config"
	"salesdash/handlers"
	"salesdash/insights"
	"salesdash/middleware"
	"salesdash/models"
	"salesdash/routes"
)

func record(city, custType, gender, product string, total int64, rating float64, clock string) models.SalesRecord {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		panic(err)
	}
	return models.SalesRecord{
		City:         city,
		CustomerType: custType,
		Gender:       gender,
		ProductLine:  product,
		Total:        decimal.NewFromInt(total),
		Rating:       rating,
		Time:         t,
		Hour:         t.Hour(),
	}
}

func fixtureTable() []models.SalesRecord {
	return []models.SalesRecord{
		record("A", "Member", "Male", "Food", 100, 8, "09:00:00"),
		record("A", "Normal", "Female", "Food", 50, 6, "14:00:00"),
		record("B", "Member", "Male", "Electronics", 200, 9, "09:30:00"),
		record("B", "Normal", "Female", "Electronics", 75, 7, "14:15:00"),
	}
}

type fakeGenerator struct {
	prompt string
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return "Food carries city A.", nil
}

func (g *fakeGenerator) Model() string { return "fake-model" }

func newApp(t *testing.T, cfg config.Config, gen insights.Generator) *fiber.App {
	t.Helper()
	if cfg.Source == "" {
		cfg.Source = config.SourceExcel
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	h := handlers.New(fixtureTable(), time.Now(), cfg, nil, gen)
	app := fiber.New()
	routes.SetupRoutes(app, h, cfg.JWTSecret)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func getJSON(t *testing.T, app *fiber.App, target string, wantStatus int) envelope {
	t.Helper()
	resp, body := do(t, app, httptest.NewRequest("GET", target, nil))
	require.Equal(t, wantStatus, resp.StatusCode, string(body))
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type summaryData struct {
	Selection     models.FilterOptions   `json:"selection"`
	KPIs          models.KPIResponse     `json:"kpis"`
	ByProductLine []models.CategoryTotal `json:"byProductLine"`
	ByHour        []models.HourTotal     `json:"byHour"`
}

func TestGetOptions(t *testing.T) {
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/options", 200)
	var opts models.FilterOptions
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Equal(t, []string{"A", "B"}, opts.Cities)
	assert.Equal(t, []string{"Member", "Normal"}, opts.CustomerTypes)
	assert.Equal(t, []string{"Male", "Female"}, opts.Genders)
}

func TestGetSummary_DefaultsToEverything(t *testing.T) {
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/summary", 200)
	var data summaryData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, int64(425), data.KPIs.TotalSales)
	assert.Equal(t, 4, data.KPIs.Transactions)
	require.NotNil(t, data.KPIs.AvgRating)
	assert.Equal(t, 7.5, *data.KPIs.AvgRating)
	assert.Equal(t, []string{"A", "B"}, data.Selection.Cities)
}

func TestGetSummary_CityA(t *testing.T) {
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/summary?city=A", 200)
	var data summaryData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, int64(150), data.KPIs.TotalSales)
	require.NotNil(t, data.KPIs.AvgRating)
	assert.Equal(t, 7.0, *data.KPIs.AvgRating)
	require.NotNil(t, data.KPIs.AvgSale)
	assert.Equal(t, 75.0, *data.KPIs.AvgSale)

	require.Len(t, data.ByProductLine, 1)
	assert.Equal(t, "Food", data.ByProductLine[0].ProductLine)
	assert.True(t, data.ByProductLine[0].Total.Equal(decimal.NewFromInt(150)))

	require.Len(t, data.ByHour, 2)
	assert.Equal(t, 9, data.ByHour[0].Hour)
	assert.True(t, data.ByHour[0].Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 14, data.ByHour[1].Hour)
	assert.True(t, data.ByHour[1].Total.Equal(decimal.NewFromInt(50)))
}

func TestGetSummary_MultiValueSelection(t *testing.T) {
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/summary?city=A&city=B&gender=Female", 200)
	var data summaryData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(125), data.KPIs.TotalSales)
	assert.Equal(t, 2, data.KPIs.Transactions)
}

func TestGetSummary_EmptySelection(t *testing.T) {
	// A submitted form with no city ticked selects nothing.
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/summary?filtered=1&customer_type=Member&gender=Male", 200)
	var data summaryData
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, int64(0), data.KPIs.TotalSales)
	assert.Nil(t, data.KPIs.AvgRating)
	assert.Nil(t, data.KPIs.AvgSale)
	assert.Empty(t, data.ByProductLine)
	assert.Empty(t, data.ByHour)
}

func TestGetSummary_UnknownValue(t *testing.T) {
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/summary?city=Z", 400)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "unknown filter value")
}

func TestListRecords_Paginates(t *testing.T) {
	env := getJSON(t, newApp(t, config.Config{}, nil), "/api/v1/records?page=2&pageSize=3", 200)
	var data models.PaginatedRecordsResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Len(t, data.Items, 1)
	assert.Equal(t, "B", data.Items[0].City)
	assert.Equal(t, 4, data.Pagination.TotalItems)
	assert.Equal(t, 2, data.Pagination.TotalPages)
}

func TestListRecords_BadPaging(t *testing.T) {
	app := newApp(t, config.Config{}, nil)
	getJSON(t, app, "/api/v1/records?page=0", 400)
	getJSON(t, app, "/api/v1/records?pageSize=1000", 400)
}

func TestCharts_ServeSVG(t *testing.T) {
	app := newApp(t, config.Config{}, nil)
	for _, target := range []string{"/api/v1/charts/product-line.svg", "/api/v1/charts/hourly.svg?city=B"} {
		resp, body := do(t, app, httptest.NewRequest("GET", target, nil))
		require.Equal(t, 200, resp.StatusCode, target)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
		assert.Contains(t, string(body), "<svg", target)
	}
}

func TestCharts_EmptySelectionPlaceholder(t *testing.T) {
	resp, body := do(t, newApp(t, config.Config{}, nil), httptest.NewRequest("GET", "/api/v1/charts/hourly.svg?filtered=1", nil))
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "No data for the current selection")
}

func TestDashboardPage(t *testing.T) {
	resp, body := do(t, newApp(t, config.Config{}, nil), httptest.NewRequest("GET", "/?filtered=1&city=A&customer_type=Member&customer_type=Normal&gender=Male&gender=Female", nil))
	require.Equal(t, 200, resp.StatusCode)
	page := string(body)

	assert.Contains(t, page, "Supermarket Sales Dashboard")
	assert.Contains(t, page, "US $ 150")
	assert.Contains(t, page, "Average Rating: 7.00")
	assert.Contains(t, page, "US $ 75.00")
	assert.Contains(t, page, "⭐⭐⭐⭐⭐⭐⭐")
	assert.Contains(t, page, `<option value="A" selected>A</option>`)
	assert.Contains(t, page, `<option value="B">B</option>`)
	assert.Equal(t, 2, strings.Count(page, `class="chart"`))
}

func TestDashboardPage_EmptySelection(t *testing.T) {
	resp, body := do(t, newApp(t, config.Config{}, nil), httptest.NewRequest("GET", "/?filtered=1", nil))
	require.Equal(t, 200, resp.StatusCode)
	page := string(body)
	assert.Contains(t, page, "US $ 0")
	assert.Contains(t, page, "Average Rating: N/A")
	assert.Contains(t, page, "No data for the current selection")
}

func TestHealth(t *testing.T) {
	resp, body := do(t, newApp(t, config.Config{}, nil), httptest.NewRequest("GET", "/healthz", nil))
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `"rows":4`)
}

func TestMetricsEndpoint(t *testing.T) {
	resp, _ := do(t, newApp(t, config.Config{}, nil), httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, resp.StatusCode)
}

func TestInsights_Disabled(t *testing.T) {
	resp, _ := do(t, newApp(t, config.Config{}, nil), httptest.NewRequest("POST", "/api/v1/insights", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestInsights_UsesSelection(t *testing.T) {
	gen := &fakeGenerator{}
	req := httptest.NewRequest("POST", "/api/v1/insights?city=A", strings.NewReader(`{"question":"Which hour is busiest?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, body := do(t, newApp(t, config.Config{}, gen), req)
	require.Equal(t, 200, resp.StatusCode, string(body))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var data models.InsightResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "fake-model", data.Model)
	assert.Equal(t, "Food carries city A.", data.Text)
	assert.Equal(t, int64(150), data.Summary.KPIs.TotalSales)

	assert.Contains(t, gen.prompt, "Cities: A\n")
	assert.Contains(t, gen.prompt, "Which hour is busiest?")
}

func TestInsights_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	resp, _ := do(t, newApp(t, config.Config{}, gen), httptest.NewRequest("POST", "/api/v1/insights", nil))
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func authConfig(t *testing.T, password string) config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return config.Config{JWTSecret: "test-secret", DashboardPasswordHash: string(hash)}
}

func TestLogin_Disabled(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := do(t, newApp(t, config.Config{}, nil), req)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestLogin_ProtectsAPI(t *testing.T) {
	app := newApp(t, authConfig(t, "s3cret"), nil)

	getJSON(t, app, "/api/v1/summary", 401)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := do(t, app, req)
	require.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := do(t, app, req)
	require.Equal(t, 200, resp.StatusCode, string(body))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	req = httptest.NewRequest("GET", "/api/v1/summary?city=B", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, _ = do(t, app, req)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestLogin_FormSetsCookieAndRedirects(t *testing.T) {
	app := newApp(t, authConfig(t, "s3cret"), nil)

	resp, _ := do(t, app, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, body := do(t, app, httptest.NewRequest("GET", "/login", nil))
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `name="password"`)

	form := url.Values{"password": {"s3cret"}}
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, _ = do(t, app, req)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var token string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookie {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	resp, body = do(t, app, req)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "Supermarket Sales Dashboard")
}

func TestLogin_FormWrongPassword(t *testing.T) {
	app := newApp(t, authConfig(t, "s3cret"), nil)
	form := url.Values{"password": {"nope"}}
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, _ := do(t, app, req)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?error=1", resp.Header.Get("Location"))
}
