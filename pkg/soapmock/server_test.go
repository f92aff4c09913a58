package soapmock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/requestlog"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(opts ...Option) *Server {
	s := NewServer(opts...)
	s.Handle(soap.GroupUsers, "echo", func(_ context.Context, req *Request) (*soap.Fragment, *soap.Fault) {
		return soap.NewFragment("echoResponse").Add("value", req.Body.TextOf("value")), nil
	})
	s.Handle(soap.GroupUsers, "fail", func(context.Context, *Request) (*soap.Fragment, *soap.Fault) {
		return nil, &soap.Fault{Code: FaultServer, Message: "boom"}
	})
	return s
}

func post(t *testing.T, h http.Handler, path, action, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", soap.ContentType)
	if action != "" {
		req.Header.Set("SOAPAction", action)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := echoServer()
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/users", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405, got %d", method, rec.Code)
		}
	}
}

func TestServer_UnknownGroup(t *testing.T) {
	rec := post(t, echoServer(), "/billing", "", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Prefix(t *testing.T) {
	s := echoServer(WithPrefix("soap/"))

	rec := post(t, s, "/soap/users", "", soap.Build(`<soap:echo><value>x</value></soap:echo>`))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DispatchByBody(t *testing.T) {
	rec := post(t, echoServer(), "/users", "", soap.Build(`<soap:echo><value>hola &amp; adios</value></soap:echo>`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, soap.ContentType, rec.Header().Get("Content-Type"))

	doc := soap.Parse(rec.Body.String())
	require.NoError(t, doc.Err())
	assert.Equal(t, "Envelope", doc.Root().Tag())
	assert.Equal(t, "hola & adios", doc.Find("echoResponse").TextOf("value"))
	assert.Nil(t, doc.Fault())
}

func TestServer_SOAPActionWins(t *testing.T) {
	// The body names echo but the quoted header names fail.
	rec := post(t, echoServer(), "/users", `"fail"`, soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// An unregistered header falls back to the body.
	rec = post(t, echoServer(), "/users", "urn:whatever", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Faults(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		wantMsg  string
	}{
		{"malformed xml", `<Envelope><Body></Envelope>`, FaultClient, "Failed to parse"},
		{"not an envelope", `<foo><bar/></foo>`, FaultClient, "root element must be Envelope"},
		{"empty body", soap.Build(""), FaultClient, "no operation element"},
		{"unknown operation", soap.Build(`<soap:nope/>`), FaultClient, "Unknown operation: nope"},
		{"operation fault", soap.Build(`<soap:fail/>`), FaultServer, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, echoServer(), "/users", "", tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			fault := soap.Parse(rec.Body.String()).Fault()
			require.NotNil(t, fault)
			assert.Equal(t, tt.wantCode, fault.Code)
			assert.Contains(t, fault.Message, tt.wantMsg)
		})
	}
}

func TestServer_Overrides(t *testing.T) {
	s := echoServer()

	s.SetOverride("echo", Override{Fault: &soap.Fault{Code: FaultServer, Message: "down for maintenance"}})
	rec := post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "down for maintenance", soap.Parse(rec.Body.String()).Fault().Message)

	s.SetOverride("echo", Override{Status: http.StatusBadGateway, Body: "<html>bad gateway</html>"})
	rec = post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "<html>bad gateway</html>", rec.Body.String())

	s.ClearOverrides()
	rec = post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_OverrideDelay(t *testing.T) {
	s := echoServer()
	s.SetOverride("echo", Override{Delay: 30 * time.Millisecond})

	start := time.Now()
	rec := post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestServer_RequestLog(t *testing.T) {
	store := requestlog.NewMemoryStore(10)
	s := echoServer(WithRequestLog(store))

	post(t, s, "/users", `"echo"`, soap.Build(`<soap:echo><password>s3cret</password></soap:echo>`))
	post(t, s, "/users", "", soap.Build(`<soap:fail/>`))

	entries := store.List(nil)
	require.Len(t, entries, 2)

	failed, ok := entries[0], entries[1]
	assert.Equal(t, "fail", failed.Operation)
	assert.Equal(t, FaultServer, failed.FaultCode)
	assert.True(t, failed.IsFault())

	assert.Equal(t, "users", ok.Group)
	assert.Equal(t, "/users", ok.Path)
	assert.Equal(t, "echo", ok.SOAPAction)
	assert.Equal(t, http.StatusOK, ok.ResponseStatus)
	assert.NotContains(t, ok.Body, "s3cret")
	assert.Contains(t, ok.ResponseBody, "echoResponse")
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	s := echoServer(WithMetrics(m))

	post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	post(t, s, "/users", "", soap.Build(`<soap:echo/>`))
	post(t, s, "/users", "", soap.Build(`<soap:fail/>`))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("users", "echo", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("users", "fail", "500")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestServer_Operations(t *testing.T) {
	s := echoServer()
	assert.Equal(t, []string{"echo", "fail"}, s.Operations(soap.GroupUsers))
	assert.Empty(t, s.Operations(soap.GroupAppointments))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.observe("users", "echo", 200, time.Millisecond)
}
