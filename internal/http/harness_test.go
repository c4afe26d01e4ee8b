package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"redheart/internal/backend"
	"redheart/internal/config"
	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/http/handlers"
	"redheart/internal/repos"
	"redheart/internal/services"
	"redheart/internal/storage"
)

const (
	adminEmail = "admin@redheart.test"
	adminPass  = "Passw0rd!"
)

// fakeAPI stands in for the store backend. Every list returns a copy.
type fakeAPI struct {
	mu sync.Mutex

	orders      []domain.Order
	submissions []domain.Submission
	products    []domain.Product
	addOns      []domain.AddOn
	pages       []domain.PageContent
	questions   []domain.Question

	// statusOverride is what the server actually stores on a status change.
	statusOverride string
	updateErr      error
	listOrdersErr  error
	importResult   domain.ImportResult
	importErr      error
	pageMsg        string

	statusCalls     []string
	submissionCalls int
	deletedProducts []string
	lastCSV         string
	created         []backend.AddOnPayload
	edited          map[string]backend.AddOnPayload
	softDeleted     []string
	upserts         []string
	newQuestions    []domain.NewQuestion
	deletedQs       []string
}

func (f *fakeAPI) ListOrders(ctx context.Context, filters map[string]string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listOrdersErr != nil {
		return nil, f.listOrdersErr
	}
	return append([]domain.Order(nil), f.orders...), nil
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, orderID+"="+string(status))
	if f.updateErr != nil {
		return f.updateErr
	}
	stored := string(status)
	if f.statusOverride != "" {
		stored = f.statusOverride
	}
	f.orders = domain.WithStatus(f.orders, orderID, stored)
	return nil
}

func (f *fakeAPI) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissionCalls++
	return append([]domain.Submission(nil), f.submissions...), nil
}

func (f *fakeAPI) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedProducts = append(f.deletedProducts, productID)
	kept := f.products[:0]
	for _, p := range f.products {
		if p.Key() != productID {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

func (f *fakeAPI) readCSV(r io.Reader) (domain.ImportResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return domain.ImportResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCSV = string(b)
	return f.importResult, f.importErr
}

func (f *fakeAPI) ImportProducts(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error) {
	return f.readCSV(r)
}

func (f *fakeAPI) UpdateProducts(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error) {
	return f.readCSV(r)
}

func (f *fakeAPI) ListAddOns(ctx context.Context) ([]domain.AddOn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AddOn(nil), f.addOns...), nil
}

func (f *fakeAPI) AddOnsByCategory(ctx context.Context, category string) ([]domain.AddOn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AddOn
	for _, a := range f.addOns {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateAddOn(ctx context.Context, in backend.AddOnPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return nil
}

func (f *fakeAPI) EditAddOn(ctx context.Context, id string, in backend.AddOnPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.edited == nil {
		f.edited = map[string]backend.AddOnPayload{}
	}
	f.edited[id] = in
	return nil
}

func (f *fakeAPI) SoftDeleteAddOn(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func (f *fakeAPI) ListPages(ctx context.Context) ([]domain.PageContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PageContent(nil), f.pages...), nil
}

func (f *fakeAPI) UpsertPage(ctx context.Context, page, htmlCode string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, page)
	for i := range f.pages {
		if f.pages[i].Page == page {
			f.pages[i].HTMLCode = htmlCode
			return f.pageMsg, nil
		}
	}
	f.pages = append(f.pages, domain.PageContent{ID: "pg-" + page, Page: page, HTMLCode: htmlCode})
	return f.pageMsg, nil
}

func (f *fakeAPI) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Question(nil), f.questions...), nil
}

func (f *fakeAPI) CreateQuestions(ctx context.Context, qs []domain.NewQuestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newQuestions = append(f.newQuestions, qs...)
	return nil
}

func (f *fakeAPI) DeleteQuestion(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedQs = append(f.deletedQs, id)
	return nil
}

// fakeStore keeps uploaded objects in memory.
type fakeStore struct {
	mu   sync.Mutex
	puts map[string][]byte
	err  error
}

func (s *fakeStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if s.puts == nil {
		s.puts = map[string][]byte{}
	}
	s.puts[key] = b
	return "https://cdn.test/" + key, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.AdminEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.AdminEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type harness struct {
	app   *fiber.App
	db    *sqlx.DB
	api   *fakeAPI
	store *fakeStore
	pub   *recordingPublisher
	auth  *services.AuthService
	deps  *handlers.Deps
	sid   string
}

// newHarness wires the full route table against api with a logged-in operator.
func newHarness(t *testing.T, api *fakeAPI) *harness {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repos.SeedAdmin(db, adminEmail, adminPass); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	auth := services.NewAuthService(repos.NewUserRepo(db))

	store := &fakeStore{}
	pub := &recordingPublisher{}
	cfg := config.Config{OrderUpdatePolicy: "block", ProductsPageSize: 20}
	deps, err := handlers.NewDeps(cfg, db, api, store, storage.NewProgressTracker(time.Minute), pub, auth)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}

	app := fiber.New(fiber.Config{
		Views:        handlers.NewViews("../../web/templates"),
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    32 << 20,
	})
	app.Use(requestid.New())
	handlers.Mount(app, deps.Routes(nil), handlers.RequireSession(auth))
	app.Use(handlers.NotFound)

	s, err := auth.Login(adminEmail, adminPass)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return &harness{app: app, db: db, api: api, store: store, pub: pub, auth: auth, deps: deps, sid: s.ID}
}

func (h *harness) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	req.AddCookie(&http.Cookie{Name: "sid", Value: h.sid})
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func (h *harness) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return h.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (h *harness) getJSON(t *testing.T, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	return h.do(t, req)
}

func (h *harness) postForm(t *testing.T, path string, form url.Values, asJSON bool) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	return h.do(t, req)
}

type filePart struct {
	field       string
	filename    string
	contentType string
	body        []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		hdr.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(file.body); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func (h *harness) postMultipart(t *testing.T, path string, fields map[string]string, file *filePart, asJSON bool) *http.Response {
	t.Helper()
	body, ct := multipartBody(t, fields, file)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	return h.do(t, req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func flashText(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw := cookieValue(resp, "flash")
	if raw == "" {
		return ""
	}
	v, err := url.QueryUnescape(raw)
	if err != nil {
		t.Fatalf("flash cookie: %v", err)
	}
	return v
}

var errBackendDown = errors.New("connection refused")

// pngBytes is a valid PNG signature followed by padding.
func pngBytes(n int) []byte {
	b := make([]byte, n)
	copy(b, []byte("\x89PNG\r\n\x1a\n"))
	return b
}
