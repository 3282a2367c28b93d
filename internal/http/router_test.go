package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"credit-risk/internal/metrics"
	"credit-risk/internal/model"
	"credit-risk/internal/service"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	now := time.Now().UTC()
	claims := service.Claims{
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "credit-risk",
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRouterAuthRequiredWhenVerifierConfigured(t *testing.T) {
	deps := RouterDeps{Verifier: service.NewJWTVerifier("secret", "credit-risk")}
	r := setupRiskRouter(&model.StubClassifier{Output: []float64{0}}, deps)

	rec := performRequest(r, http.MethodPost, "/risk/assess", validAssessBody())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/risk/form", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/risk/form", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "svc-frontend"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health must stay public, got %d", rec.Code)
	}
}

func TestRouterRateLimitsAssessments(t *testing.T) {
	deps := RouterDeps{Limiter: service.NewMemoryRateLimiter(time.Minute, 1)}
	r := setupRiskRouter(&model.StubClassifier{Output: []float64{0}}, deps)

	rec := performRequest(r, http.MethodPost, "/risk/assess", validAssessBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodPost, "/risk/assess", validAssessBody())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

type recordingLimiter struct {
	keys []string
}

func (l *recordingLimiter) Allow(key string) bool {
	l.keys = append(l.keys, key)
	return true
}

func TestRouterRateLimitKeyUsesTokenSubject(t *testing.T) {
	limiter := &recordingLimiter{}
	deps := RouterDeps{
		Verifier: service.NewJWTVerifier("secret", "credit-risk"),
		Limiter:  limiter,
	}
	r := setupRiskRouter(&model.StubClassifier{Output: []float64{0}}, deps)

	req := httptest.NewRequest(http.MethodPost, "/risk/assess", strings.NewReader(`{"age":30,"sex":"Male","job":"Skilled","housing":"Own","saving_accounts":"None","checking_account":"None","credit_amount":5000,"duration":12,"purpose":"New car"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "svc-frontend"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "sub:svc-frontend" {
		t.Fatalf("unexpected limiter keys %v", limiter.keys)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	r := setupRiskRouter(&model.StubClassifier{Output: []float64{1}}, RouterDeps{Metrics: m})

	if rec := performRequest(r, http.MethodPost, "/risk/assess", validAssessBody()); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec := performRequest(r, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `credit_risk_assessments_total{verdict="high_risk"} 1`) {
		t.Fatalf("expected verdict counter, got:\n%s", body)
	}
	if !strings.Contains(body, `credit_risk_http_requests_total{method="POST",route="/risk/assess",status="200"} 1`) {
		t.Fatalf("expected request counter, got:\n%s", body)
	}
}
