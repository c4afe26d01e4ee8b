package services_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"redheart/internal/events"
	"redheart/internal/export"
	"redheart/internal/repos"
	"redheart/internal/services"
	"redheart/internal/storage"
	"redheart/internal/validate"
)

type memStore struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (m *memStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	m.keys = append(m.keys, key)
	m.mu.Unlock()
	return "https://cdn.test/" + key, nil
}

func newImageService(t *testing.T, store storage.ObjectStore) (*services.ImageService, string) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repos.SeedAdmin(db, "ops@redheart.in", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	users := repos.NewUserRepo(db)
	u, err := users.ByEmail("ops@redheart.in")
	if err != nil {
		t.Fatal(err)
	}
	if err := users.CreateSession("sid-1", u.ID); err != nil {
		t.Fatal(err)
	}
	svc := services.NewImageService(store, storage.NewProgressTracker(time.Minute),
		repos.NewImageSlotRepo(db), repos.NewExportRepo(db), events.Nop{})
	svc.Now = func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC) }
	return svc, "sid-1"
}

func image(name, ct string, n int) *services.ImageFile {
	return &services.ImageFile{Filename: name, ContentType: ct, Size: int64(n), Body: bytes.NewReader(make([]byte, n))}
}

func TestImageUploadRejectsBeforeStore(t *testing.T) {
	store := &memStore{}
	svc, sid := newImageService(t, store)
	ctx := context.Background()

	cases := []struct {
		in   services.ImageUpload
		want error
	}{
		{services.ImageUpload{ProductID: "P1", Slot: "1st", File: image("a.txt", "text/plain", 10)}, validate.ErrNotImage},
		{services.ImageUpload{ProductID: "P1", Slot: "1st", File: image("big.png", "image/png", 12*1024*1024)}, validate.ErrImageTooLarge},
		{services.ImageUpload{ProductID: "", Slot: "1st", File: image("a.png", "image/png", 10)}, services.ErrFillRequired},
		{services.ImageUpload{ProductID: "P1", Slot: "9th", File: image("a.png", "image/png", 10)}, services.ErrFillRequired},
		{services.ImageUpload{ProductID: "P1", Slot: "1st"}, services.ErrFillRequired},
	}
	for i, c := range cases {
		if _, _, err := svc.Upload(ctx, "ops", sid, c.in); !errors.Is(err, c.want) {
			t.Errorf("case %d: err = %v, want %v", i, err, c.want)
		}
	}
	if len(store.keys) != 0 {
		t.Fatalf("store called: %v", store.keys)
	}
}

func TestImageUploadRecordsSlotAndProgress(t *testing.T) {
	store := &memStore{}
	svc, sid := newImageService(t, store)

	url, set, err := svc.Upload(context.Background(), "ops", sid, services.ImageUpload{
		ProductID: "P1", Slot: "2nd", UploadID: "up-1", File: image(`C:\shots\rose.png`, "image/png", 2048),
	})
	if err != nil {
		t.Fatal(err)
	}
	wantKey := "product-images/P1/2nd-" + "1710027000000" + "-rose.png"
	if len(store.keys) != 1 || store.keys[0] != wantKey {
		t.Fatalf("keys = %v", store.keys)
	}
	if url != "https://cdn.test/"+wantKey || set.Completed() != 1 {
		t.Fatalf("url = %s set = %+v", url, set)
	}
	p, ok := svc.ProgressOf("up-1")
	if !ok || !p.Done || p.Percent != 100 || p.Transferred != 2048 {
		t.Fatalf("progress = %+v", p)
	}
	cur, err := svc.Current(sid)
	if err != nil || cur.ProductID != "P1" || !cur.HasAny() {
		t.Fatalf("current = %+v %v", cur, err)
	}
}

func TestImageUploadStoreFailureLeavesSlots(t *testing.T) {
	svc, sid := newImageService(t, &memStore{err: errors.New("bucket gone")})

	_, _, err := svc.Upload(context.Background(), "ops", sid, services.ImageUpload{
		ProductID: "P1", Slot: "1st", UploadID: "up-2", File: image("a.png", "image/png", 64),
	})
	if err == nil {
		t.Fatal("expected store error")
	}
	if p, _ := svc.ProgressOf("up-2"); !p.Done || p.Err == "" {
		t.Fatalf("progress = %+v", p)
	}
	if cur, _ := svc.Current(sid); cur.HasAny() {
		t.Fatalf("slots = %+v", cur)
	}
}

func TestImageExport(t *testing.T) {
	svc, sid := newImageService(t, &memStore{})
	ctx := context.Background()

	if _, _, err := svc.Export(sid, ""); !errors.Is(err, services.ErrNeedProduct) {
		t.Fatalf("no product: %v", err)
	}
	if _, _, err := svc.Export(sid, "P1"); !errors.Is(err, services.ErrNeedImage) {
		t.Fatalf("no image: %v", err)
	}
	for _, slot := range []string{"1st", "3rd"} {
		in := services.ImageUpload{ProductID: "P1", Slot: slot, File: image(slot+".jpg", "image/jpeg", 16)}
		if _, _, err := svc.Upload(ctx, "ops", sid, in); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := svc.Export(sid, "P2"); !errors.Is(err, services.ErrNeedImage) {
		t.Fatalf("other product: %v", err)
	}

	name, data, err := svc.Export(sid, " ")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Product_Images_P1_2024-03-09.xlsx" {
		t.Fatalf("name = %s", name)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	if err != nil || len(rows) != 2 {
		t.Fatalf("rows = %v err = %v", rows, err)
	}
	if rows[1][0] != "P1" || !strings.HasSuffix(rows[1][1], "1st.jpg") || !strings.HasSuffix(rows[1][3], "3rd.jpg") {
		t.Fatalf("row = %q", rows[1])
	}

	recent, err := svc.RecentExports(5)
	if err != nil || len(recent) != 1 || recent[0].Filename != name {
		t.Fatalf("recent = %+v %v", recent, err)
	}

	if err := svc.Reset(sid); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Export(sid, "P1"); !errors.Is(err, services.ErrNeedImage) {
		t.Fatalf("after reset: %v", err)
	}
}
