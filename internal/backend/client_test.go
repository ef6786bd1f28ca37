package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTokens struct {
	token  string
	resets int
}

func (m *mockTokens) Token(context.Context) (string, error) { return m.token, nil }
func (m *mockTokens) Reset(context.Context) error           { m.resets++; return nil }

func newTestClient(origin string, tokens TokenStore) *Client {
	return NewClient(Config{PublicOrigin: origin, ExecContext: ContextPublic}, tokens)
}

func TestResolveOrigin_PublicContextRequiresPublicOrigin(t *testing.T) {
	c := NewClient(Config{ExecContext: ContextPublic}, nil)

	_, err := c.Categories(context.Background())
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindConfig, be.Kind)
}

func TestResolveOrigin_InternalContextFallsBackToAbsolutePublic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["Alimentos"]`))
	}))
	defer srv.Close()

	c := NewClient(Config{PublicOrigin: srv.URL, ExecContext: ContextInternal}, nil)
	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alimentos"}, cats)
}

func TestResolveOrigin_InternalContextRequiresInternalOrigin(t *testing.T) {
	// public origin without a scheme cannot serve internal execution
	c := NewClient(Config{PublicOrigin: "//cdn.example", ExecContext: ContextInternal}, nil)

	_, err := c.Categories(context.Background())
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindConfig, be.Kind)
}

func TestResolveOrigin_InternalOriginWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{
		PublicOrigin:   "/relative",
		InternalOrigin: srv.URL,
		ExecContext:    ContextInternal,
	}, nil)

	_, err := c.Categories(context.Background())
	assert.NoError(t, err)
}

func TestFetch_TransportFailure(t *testing.T) {
	// a server that is already closed refuses connections
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	origin := srv.URL
	srv.Close()

	c := newTestClient(origin, nil)
	_, err := c.Categories(context.Background())

	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, be.Kind)
	assert.Contains(t, be.URL, origin)
}

func TestFetch_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &mockTokens{token: "tok-123"})
	_, err := fetchJSON[map[string]bool](context.Background(), c, "/x", requestOptions{auth: true})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestFetch_AnonymousCallSendsNoToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &mockTokens{token: "tok-123"})
	_, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestFetch_AuthenticatedForbiddenResetsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tokens := &mockTokens{token: "tok-123"}
	c := newTestClient(srv.URL, tokens)

	_, err := fetchJSON[struct{}](context.Background(), c, "/x", requestOptions{auth: true})
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, be.Kind)
	assert.Equal(t, http.StatusForbidden, be.Status)
	assert.Equal(t, 1, tokens.resets)
}

func TestFetch_AnonymousForbiddenIsPlainHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tokens := &mockTokens{token: "tok-123"}
	c := newTestClient(srv.URL, tokens)

	_, err := c.Categories(context.Background())
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindHTTP, be.Kind)
	assert.Zero(t, tokens.resets)
}

func TestFetch_ErrorMessageFromBodyFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"sin stock"}`, "sin stock"},
		{"error field", `{"error":"producto inexistente"}`, "producto inexistente"},
		{"raw text", `algo salió mal`, "algo salió mal"},
		{"empty body", ``, "HTTP 500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, nil)
			_, err := c.Categories(context.Background())

			be, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindHTTP, be.Kind)
			assert.Equal(t, tc.want, be.Message)
		})
	}
}

func TestFetch_ErrorMessageIsCapped(t *testing.T) {
	long := strings.Repeat("x", 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(long))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Categories(context.Background())

	be, ok := AsError(err)
	require.True(t, ok)
	assert.Len(t, be.Message, maxErrorMessageLen)
}

func TestFetch_ErrorMessageCapKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("ó", maxErrorMessageLen+100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(long))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Categories(context.Background())

	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, maxErrorMessageLen, utf8.RuneCountInString(be.Message))
	assert.True(t, utf8.ValidString(be.Message), "cap must never split a rune")
}

func TestFetch_InvalidJSONOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Categories(context.Background())

	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidResponse, be.Kind)
}

func TestFetch_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	got, err := fetchJSON[*ProductsPage](context.Background(), c, "/x", requestOptions{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProducts_Paginated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/public/getProductsPaginated", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("size"))
		w.Write([]byte(`{"data":[{"id":7,"name":"Pipeta","price":2300.5,"stock":4,"categoryName":"Antiparasitarios"}],"totalCount":40}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	page, err := c.Products(context.Background(), 2, 12)
	require.NoError(t, err)
	assert.Equal(t, 40, page.TotalCount)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Pipeta", page.Data[0].Name)
}

func TestProductsByCategory_EscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Higiene y cuidado", r.URL.Query().Get("categoryName"))
		w.Write([]byte(`{"data":[],"totalCount":0}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.ProductsByCategory(context.Background(), "Higiene y cuidado", 1, 12)
	assert.NoError(t, err)
}

func TestSearchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/public/searchProduct", r.URL.Path)
		assert.Equal(t, "shampoo", r.URL.Query().Get("searchTerm"))
		w.Write([]byte(`[{"id":1,"name":"Shampoo hipoalergénico","price":980}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	products, err := c.SearchProducts(context.Background(), "shampoo")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
}

func TestCreateCheckout_ReturnsInitPoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"initPoint":"https://pay.example/x"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	initPoint, err := c.CreateCheckout(context.Background(), Customer{Name: "Ana"}, []CheckoutItem{
		{ID: 1, Title: "Alimento", Quantity: 2, UnitPrice: 1500},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/x", initPoint)
}

func TestCreateCheckout_MissingInitPoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.CreateCheckout(context.Background(), Customer{}, nil)

	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidResponse, be.Kind)
}
