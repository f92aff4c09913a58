package soap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// fakeTransport records requests and replies with a canned response.
type fakeTransport struct {
	mu      sync.Mutex
	urls    []string
	bodies  []string
	actions []string

	resp *Response
	err  error
}

func (f *fakeTransport) Send(_ context.Context, url, body, action string) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	f.bodies = append(f.bodies, body)
	f.actions = append(f.actions, action)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func okResponse(body string) *Response {
	return &Response{Body: body, StatusCode: http.StatusOK, OK: true}
}

func TestInvoker_URL(t *testing.T) {
	tests := []struct {
		base  string
		group EndpointGroup
		want  string
	}{
		{"http://localhost:8080/soap", GroupUsers, "http://localhost:8080/soap/users"},
		{"http://localhost:8080/soap/", GroupUsers, "http://localhost:8080/soap/users"},
		{"http://localhost:8080/soap//", GroupAppointments, "http://localhost:8080/soap/appointments"},
		{"http://backend", "/appointments", "http://backend/appointments"},
	}

	for _, tt := range tests {
		inv := NewInvoker(tt.base)
		if got := inv.URL(tt.group); got != tt.want {
			t.Errorf("URL(%q) with base %q = %q, want %q", tt.group, tt.base, got, tt.want)
		}
	}
}

func TestInvoker_Invoke(t *testing.T) {
	ft := &fakeTransport{resp: okResponse(`<r><doctors><doctorId>1</doctorId></doctors></r>`)}
	inv := NewInvoker("http://backend/soap/", WithTransport(ft))

	doc, ok, err := inv.Invoke(context.Background(), GroupUsers, "getAllDoctors", `<soap:getAllDoctors/>`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", doc.Find("doctors").TextOf("doctorId"))

	require.Len(t, ft.urls, 1)
	assert.Equal(t, "http://backend/soap/users", ft.urls[0])
	assert.Equal(t, "getAllDoctors", ft.actions[0])
	assert.Equal(t, Build(`<soap:getAllDoctors/>`), ft.bodies[0])
}

func TestInvoker_HTTPErrorStillParses(t *testing.T) {
	ft := &fakeTransport{resp: &Response{
		Body:       `<html><body>Internal Server Error</body></html>`,
		StatusCode: http.StatusInternalServerError,
	}}
	inv := NewInvoker("http://backend", WithTransport(ft))

	doc, ok, err := inv.Invoke(context.Background(), GroupUsers, "getDoctor", `<soap:getDoctor/>`)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, doc)
	assert.Nil(t, doc.Find("doctor"))
	assert.Empty(t, doc.FindAll("doctor"))
}

func TestInvoker_UnparseableSuccess(t *testing.T) {
	ft := &fakeTransport{resp: okResponse(`not xml`)}
	inv := NewInvoker("http://backend", WithTransport(ft))

	doc, ok, err := inv.Invoke(context.Background(), GroupUsers, "getAllDoctors", `<soap:getAllDoctors/>`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Error(t, doc.Err())
	assert.Empty(t, doc.FindAll("doctors"))
}

func TestInvoker_TransportErrorPropagates(t *testing.T) {
	want := &TransportError{URL: "http://backend/users", Action: "getDoctor", Err: errors.New("connection refused")}
	ft := &fakeTransport{err: want}
	inv := NewInvoker("http://backend", WithTransport(ft))

	doc, ok, err := inv.Invoke(context.Background(), GroupUsers, "getDoctor", `<soap:getDoctor/>`)
	assert.Nil(t, doc)
	assert.False(t, ok)
	assert.Same(t, want, err)
}

func TestInvoker_CallReportsFault(t *testing.T) {
	ft := &fakeTransport{resp: &Response{
		Body: `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body>` +
			`<soapenv:Fault><faultcode>soapenv:Server</faultcode><faultstring>boom</faultstring></soapenv:Fault>` +
			`</soapenv:Body></soapenv:Envelope>`,
		StatusCode: http.StatusInternalServerError,
	}}
	inv := NewInvoker("http://backend", WithTransport(ft))

	reply, err := inv.Call(context.Background(), GroupAppointments, "deleteAppointment", `<soap:deleteAppointment/>`)
	require.NoError(t, err)
	assert.False(t, reply.Succeeded)
	assert.Equal(t, http.StatusInternalServerError, reply.StatusCode)
	require.NotNil(t, reply.Fault)
	assert.Equal(t, "boom", reply.Fault.Message)
}

func TestInvoker_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := &fakeTransport{resp: okResponse(`<r/>`)}
	inv := NewInvoker("http://backend", WithTransport(ok), WithMetrics(m))
	for range 2 {
		_, _, err := inv.Invoke(context.Background(), GroupUsers, "getAllDoctors", `<soap:getAllDoctors/>`)
		require.NoError(t, err)
	}

	failing := &fakeTransport{err: &CancelledError{URL: "u", Action: "getDoctor", Err: context.Canceled}}
	inv = NewInvoker("http://backend", WithTransport(failing), WithMetrics(m))
	_, _, err := inv.Invoke(context.Background(), GroupUsers, "getDoctor", `<soap:getDoctor/>`)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues("users", "getAllDoctors", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("users", "getDoctor", OutcomeCancelled)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestInvoker_Tracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ft := &fakeTransport{resp: &Response{Body: `<r/>`, StatusCode: http.StatusBadGateway}}
	inv := NewInvoker("http://backend", WithTransport(ft), WithTracerProvider(tp))

	_, _, err := inv.Invoke(context.Background(), GroupAppointments, "getAllAppointments", `<soap:getAllAppointments/>`)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "soap getAllAppointments", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "appointments", attrs["soap.group"].AsString())
	assert.Equal(t, "getAllAppointments", attrs["soap.action"].AsString())
	assert.Equal(t, int64(http.StatusBadGateway), attrs["http.response.status_code"].AsInt64())
	assert.NotEmpty(t, attrs["soap.call_id"].AsString())
}

func TestInvoker_DebugLogRedactsPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ft := &fakeTransport{resp: okResponse(`<r/>`)}
	inv := NewInvoker("http://backend", WithTransport(ft), WithLogger(logger))

	fragment := NewFragment("loginPatient").Add("email", "a@b.c").Add("password", "hunter2").String()
	_, _, err := inv.Invoke(context.Background(), GroupUsers, "loginPatient", fragment)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "soap request")
	assert.NotContains(t, buf.String(), "hunter2")
	// The wire body is untouched.
	assert.Contains(t, ft.bodies[0], "<password>hunter2</password>")
}

func TestInvoker_ConcurrentCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<r><action>` + r.Header.Get("SOAPAction") + `</action></r>`))
	}))
	defer server.Close()

	inv := NewInvoker(server.URL)
	actions := []string{"getAllDoctors", "getAllPatients", "getDoctor", "getPatientById"}

	var wg sync.WaitGroup
	for _, action := range actions {
		wg.Go(func() {
			doc, ok, err := inv.Invoke(context.Background(), GroupUsers, action, "<soap:"+action+"/>")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, action, doc.Find("action").Text())
		})
	}
	wg.Wait()
}
