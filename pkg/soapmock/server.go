package soapmock

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/httputil"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/logging"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/requestlog"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/util"
	"github.com/beevik/etree"
)

// maxSOAPBodySize bounds how much of a request body is read.
const maxSOAPBodySize = 10 << 20 // 10MB

// Server dispatches SOAP requests to registered operations.
type Server struct {
	prefix string

	mu        sync.RWMutex
	ops       map[soap.EndpointGroup]map[string]OperationFunc
	overrides map[string]Override

	requestLog requestlog.Logger
	logger     *slog.Logger
	metrics    *Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithPrefix sets the path under which endpoint groups are served,
// e.g. "/soap" for /soap/users.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = "/" + strings.Trim(prefix, "/")
		if s.prefix == "/" {
			s.prefix = ""
		}
	}
}

// WithRequestLog records every exchange in l.
func WithRequestLog(l requestlog.Logger) Option {
	return func(s *Server) {
		s.requestLog = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a server with no operations.
func NewServer(opts ...Option) *Server {
	s := &Server{
		ops:       make(map[soap.EndpointGroup]map[string]OperationFunc),
		overrides: make(map[string]Override),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle registers fn as the operation named action in group.
func (s *Server) Handle(group soap.EndpointGroup, action string, fn OperationFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ops[group] == nil {
		s.ops[group] = make(map[string]OperationFunc)
	}
	s.ops[group][action] = fn
}

// Operations lists the actions registered in group, sorted.
func (s *Server) Operations(group soap.EndpointGroup) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.ops[group]))
	for name := range s.ops[group] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetOverride forces the answer to action.
func (s *Server) SetOverride(action string, o Override) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[action] = o
}

// ClearOverrides removes every override.
func (s *Server) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.overrides)
}

// exchange accumulates what is logged about one request.
type exchange struct {
	start     time.Time
	group     soap.EndpointGroup
	operation string
	action    string
	body      string
	r         *http.Request
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ex := &exchange{start: time.Now(), r: r}

	rest, ok := strings.CutPrefix(r.URL.Path, s.prefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ex.group = soap.EndpointGroup(strings.Trim(rest, "/"))

	s.mu.RLock()
	ops, known := s.ops[ex.group]
	s.mu.RUnlock()
	if !known {
		http.NotFound(w, r)
		return
	}

	// Only accept POST for SOAP operations
	if r.Method != http.MethodPost {
		httputil.WriteText(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSOAPBodySize))
	defer func() { _ = r.Body.Close() }()
	if err != nil {
		s.writeFault(w, ex, clientFault("Failed to read request body"))
		return
	}
	ex.body = string(body)
	ex.action = strings.Trim(r.Header.Get("SOAPAction"), `"`)

	doc := soap.Parse(ex.body)
	if doc.Err() != nil {
		s.writeFault(w, ex, clientFault("Failed to parse SOAP envelope: "+doc.Err().Error()))
		return
	}
	if tag := doc.Root().Tag(); tag != "Envelope" {
		s.writeFault(w, ex, clientFault("root element must be Envelope, got "+tag))
		return
	}
	children := doc.Body().Children()
	if len(children) == 0 {
		s.writeFault(w, ex, clientFault("no operation element found in Body"))
		return
	}
	opEl := children[0]

	// SOAPAction wins when it names a known operation.
	ex.operation = opEl.Tag()
	if _, ok := ops[ex.action]; ok {
		ex.operation = ex.action
	}
	fn, ok := ops[ex.operation]
	if !ok {
		s.writeFault(w, ex, clientFault("Unknown operation: "+ex.operation))
		return
	}

	s.mu.RLock()
	override, overridden := s.overrides[ex.operation]
	s.mu.RUnlock()
	if overridden {
		if override.Delay > 0 {
			select {
			case <-time.After(override.Delay):
			case <-r.Context().Done():
				return
			}
		}
		switch {
		case override.Fault != nil:
			s.writeFault(w, ex, override.Fault)
			return
		case override.Status != 0:
			s.write(w, ex, override.Status, "text/plain; charset=utf-8", override.Body, "")
			return
		}
	}

	fragment, fault := fn(r.Context(), &Request{
		Group:      ex.group,
		Operation:  ex.operation,
		SOAPAction: ex.action,
		Body:       opEl,
		Document:   doc,
	})
	if fault != nil {
		s.writeFault(w, ex, fault)
		return
	}
	s.write(w, ex, http.StatusOK, soap.ContentType, buildResponse(fragment), "")
}

// buildResponse wraps fragment in a SOAP 1.1 envelope that also binds the
// service prefix used by soap.Fragment.
func buildResponse(fragment *soap.Fragment) string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString(`<S:Envelope xmlns:S="` + soap.EnvelopeNamespace + `" xmlns:` + soap.ServicePrefix + `="` + soap.ServiceNamespace + `">`)
	buf.WriteString(`<S:Body>`)
	if fragment != nil {
		buf.WriteString(fragment.String())
	}
	buf.WriteString(`</S:Body>`)
	buf.WriteString(`</S:Envelope>`)
	return buf.String()
}

// buildFault11 builds a SOAP 1.1 fault response.
func buildFault11(fault *soap.Fault) string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("S:Envelope")
	env.CreateAttr("xmlns:S", soap.EnvelopeNamespace)
	f := env.CreateElement("S:Body").CreateElement("S:Fault")
	f.CreateElement("faultcode").SetText(fault.Code)
	f.CreateElement("faultstring").SetText(fault.Message)
	if fault.Detail != "" {
		f.CreateElement("detail").SetText(fault.Detail)
	}
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func (s *Server) writeFault(w http.ResponseWriter, ex *exchange, fault *soap.Fault) {
	s.write(w, ex, http.StatusInternalServerError, soap.ContentType, buildFault11(fault), fault.Code)
}

func (s *Server) write(w http.ResponseWriter, ex *exchange, status int, contentType, body, faultCode string) {
	httputil.WriteXML(w, status, contentType, body)

	duration := time.Since(ex.start)
	s.metrics.observe(string(ex.group), ex.operation, status, duration)

	s.logger.Debug("soap request served",
		"group", ex.group, "operation", ex.operation, "status", status,
		"fault", faultCode, "duration", duration)

	if s.requestLog != nil {
		s.requestLog.Log(&requestlog.Entry{
			Timestamp:      ex.start,
			Group:          string(ex.group),
			Path:           ex.r.URL.Path,
			Operation:      ex.operation,
			SOAPAction:     ex.action,
			Body:           util.TruncateBody(util.RedactElements(ex.body, "password"), 0),
			BodySize:       len(ex.body),
			RemoteAddr:     ex.r.RemoteAddr,
			ResponseStatus: status,
			ResponseBody:   util.TruncateBody(body, 0),
			DurationMs:     int(duration.Milliseconds()),
			FaultCode:      faultCode,
		})
	}
}
