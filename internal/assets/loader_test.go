package assets_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"testing/iotest"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/image/bmp"

	"planewar/internal/assets"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{0xff, 0x6b, 0x6b, 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T, w, h int, delays ...int) []byte {
	t.Helper()
	palette := color.Palette{color.Transparent, color.White, color.Black}
	g := &gif.GIF{Config: image.Config{Width: w, Height: h, ColorModel: palette}}
	for i, d := range delays {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		frame.SetColorIndex(i%w, 0, 1+uint8(i%2))
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, d)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// newServer serves files under /images/ and counts requests per path.
func newServer(t *testing.T, files map[string][]byte) (*httptest.Server, *int64) {
	t.Helper()
	var hits int64
	mux := http.NewServeMux()
	mux.HandleFunc("/images/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		data, ok := files[r.URL.Path[len("/images/"):]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newHTTPLoader(srv *httptest.Server, opts ...assets.Option) *assets.Loader {
	f := &assets.HTTPFetcher{Client: srv.Client(), Base: srv.URL + "/images"}
	return assets.NewLoader(f, opts...)
}

func TestLoadBitmapValid(t *testing.T) {
	srv, _ := newServer(t, map[string][]byte{"valid.png": encodePNG(t, 13, 7)})
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	bmp, err := newHTTPLoader(srv, assets.WithLogger(logger)).LoadBitmap(context.Background(), "valid.png")
	if err != nil {
		t.Fatalf("LoadBitmap: %v", err)
	}
	if bmp.Width() != 13 || bmp.Height() != 7 {
		t.Errorf("size = %dx%d, want 13x7", bmp.Width(), bmp.Height())
	}
	if bmp.Format() != "png" {
		t.Errorf("format = %q, want png", bmp.Format())
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "bitmap loaded" {
		t.Fatalf("last log entry = %v, want bitmap loaded", entry)
	}
	if entry.Data["name"] != "valid.png" {
		t.Errorf("logged name = %v", entry.Data["name"])
	}
}

func TestLoadBitmapMissing(t *testing.T) {
	srv, _ := newServer(t, nil)

	_, err := newHTTPLoader(srv).LoadBitmap(context.Background(), "missing.png")
	if !errors.Is(err, assets.ErrResourceUnavailable) {
		t.Fatalf("err = %v, want ErrResourceUnavailable", err)
	}
	if errors.Is(err, assets.ErrDecode) {
		t.Errorf("err = %v also matches ErrDecode", err)
	}

	var le *assets.Error
	if !errors.As(err, &le) {
		t.Fatalf("err is %T, want *assets.Error", err)
	}
	if le.Name != "missing.png" || le.StatusCode != http.StatusNotFound {
		t.Errorf("error = {Name:%q StatusCode:%d}, want {missing.png 404}", le.Name, le.StatusCode)
	}
}

func TestLoadBitmapCorrupt(t *testing.T) {
	srv, _ := newServer(t, map[string][]byte{"corrupt.png": []byte("this is not an image")})

	_, err := newHTTPLoader(srv).LoadBitmap(context.Background(), "corrupt.png")
	if !errors.Is(err, assets.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	if got := assets.KindOf(err); got != assets.KindDecode {
		t.Errorf("KindOf = %v, want %v", got, assets.KindDecode)
	}
}

func TestLoadBitmapRequest(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody int64 = -1
	payload := encodePNG(t, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotBody, _ = io.Copy(io.Discard, r.Body)
		w.Write(payload)
	}))
	defer srv.Close()

	f := &assets.HTTPFetcher{Client: srv.Client(), Base: srv.URL + "/images/"}
	if _, err := assets.NewLoader(f).LoadBitmap(context.Background(), "hero1.png"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodGet || gotPath != "/images/hero1.png" || gotBody != 0 {
		t.Errorf("request = %s %s (body %d), want GET /images/hero1.png (body 0)", gotMethod, gotPath, gotBody)
	}
}

func TestLoadBitmapNoCache(t *testing.T) {
	srv, hits := newServer(t, map[string][]byte{"hero2.png": encodePNG(t, 2, 2)})
	l := newHTTPLoader(srv)

	a, err := l.LoadBitmap(context.Background(), "hero2.png")
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.LoadBitmap(context.Background(), "hero2.png")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("second load returned the same Bitmap")
	}
	if n := atomic.LoadInt64(hits); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}
}

func TestLoadBitmapServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := &assets.HTTPFetcher{Client: srv.Client(), Base: srv.URL}
	_, err := assets.NewLoader(f).LoadBitmap(context.Background(), "enemy1.png")

	var le *assets.Error
	if !errors.As(err, &le) || le.Kind != assets.KindResourceUnavailable || le.StatusCode != 500 {
		t.Fatalf("err = %v, want ResourceUnavailable with status 500", err)
	}
}

type fetcherFunc func(ctx context.Context, name string) (io.ReadCloser, error)

func (f fetcherFunc) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	return f(ctx, name)
}

func TestLoadBitmapTransferError(t *testing.T) {
	payload := encodePNG(t, 4, 4)
	f := fetcherFunc(func(context.Context, string) (io.ReadCloser, error) {
		r := io.MultiReader(bytes.NewReader(payload[:10]), iotest.ErrReader(io.ErrUnexpectedEOF))
		return io.NopCloser(r), nil
	})

	_, err := assets.NewLoader(f).LoadBitmap(context.Background(), "hero1.png")
	if !errors.Is(err, assets.ErrTransfer) {
		t.Fatalf("err = %v, want ErrTransfer", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v does not wrap io.ErrUnexpectedEOF", err)
	}
}

func TestLoadBitmapTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	f := &assets.HTTPFetcher{Client: srv.Client(), Base: srv.URL}
	_, err := assets.NewLoader(f, assets.WithTimeout(50*time.Millisecond)).LoadBitmap(context.Background(), "slow.png")
	if !errors.Is(err, assets.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if errors.Is(err, assets.ErrResourceUnavailable) {
		t.Errorf("timeout also reported as ResourceUnavailable: %v", err)
	}
}

func TestDirFetcher(t *testing.T) {
	fsys := fstest.MapFS{
		"hero1.png":   {Data: encodePNG(t, 5, 3)},
		"enemy1.bmp":  {Data: encodeBMP(t, 6, 2)},
		"corrupt.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	l := assets.NewLoader(&assets.DirFetcher{FS: fsys})

	tests := []struct {
		name         string
		wantW, wantH int
		wantFormat   string
		wantErr      error
	}{
		{name: "hero1.png", wantW: 5, wantH: 3, wantFormat: "png"},
		{name: "enemy1.bmp", wantW: 6, wantH: 2, wantFormat: "bmp"},
		{name: "corrupt.png", wantErr: assets.ErrDecode},
		{name: "missing.png", wantErr: assets.ErrResourceUnavailable},
		{name: "../escape.png", wantErr: assets.ErrResourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmp, err := l.LoadBitmap(context.Background(), tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if bmp.Width() != tt.wantW || bmp.Height() != tt.wantH || bmp.Format() != tt.wantFormat {
				t.Errorf("got %dx%d %s, want %dx%d %s",
					bmp.Width(), bmp.Height(), bmp.Format(), tt.wantW, tt.wantH, tt.wantFormat)
			}
		})
	}
}

func encodeBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadAnimation(t *testing.T) {
	fsys := fstest.MapFS{
		"hero.gif":  {Data: encodeGIF(t, 8, 4, 10, 20, 5)},
		"hero1.png": {Data: encodePNG(t, 3, 3)},
	}
	l := assets.NewLoader(&assets.DirFetcher{FS: fsys})

	anim, err := l.LoadAnimation(context.Background(), "hero.gif")
	if err != nil {
		t.Fatal(err)
	}
	if anim.Len() != 3 {
		t.Fatalf("frames = %d, want 3", anim.Len())
	}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 50 * time.Millisecond}
	for i, d := range want {
		if anim.Delays[i] != d {
			t.Errorf("delay[%d] = %v, want %v", i, anim.Delays[i], d)
		}
		if f := anim.Frames[i]; f.Width() != 8 || f.Height() != 4 {
			t.Errorf("frame[%d] = %dx%d, want 8x4", i, f.Width(), f.Height())
		}
	}

	single, err := l.LoadAnimation(context.Background(), "hero1.png")
	if err != nil {
		t.Fatal(err)
	}
	if single.Len() != 1 || single.Frames[0].Format() != "png" {
		t.Errorf("single = %d frames (%s), want 1 png frame", single.Len(), single.Frames[0].Format())
	}
}

func TestLoadAnimationCorruptGIF(t *testing.T) {
	fsys := fstest.MapFS{"bad.gif": {Data: []byte("GIF89a....")}}
	_, err := assets.NewLoader(&assets.DirFetcher{FS: fsys}).LoadAnimation(context.Background(), "bad.gif")
	if !errors.Is(err, assets.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestPending(t *testing.T) {
	srv, _ := newServer(t, map[string][]byte{"hero1.png": encodePNG(t, 9, 9)})
	l := newHTTPLoader(srv)

	ok := l.Start(context.Background(), "hero1.png")
	missing := l.Start(context.Background(), "nope.png")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bmp, err := ok.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if bmp.Width() != 9 {
		t.Errorf("width = %d, want 9", bmp.Width())
	}
	if _, done, err := ok.Poll(); !done || err != nil {
		t.Errorf("Poll after Wait = (done %v, err %v)", done, err)
	}

	<-missing.Done()
	if _, done, err := missing.Poll(); !done || !errors.Is(err, assets.ErrResourceUnavailable) {
		t.Errorf("Poll = (done %v, err %v), want done with ErrResourceUnavailable", done, err)
	}
}

func TestResourcePath(t *testing.T) {
	tests := []struct{ base, name, want string }{
		{"./images", "hero1.png", "./images/hero1.png"},
		{"./images/", "hero1.png", "./images/hero1.png"},
		{"http://cdn/images", "a b.png", "http://cdn/images/a b.png"},
	}
	for _, tt := range tests {
		if got := assets.ResourcePath(tt.base, tt.name); got != tt.want {
			t.Errorf("ResourcePath(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.want)
		}
	}
}

func TestNewFetcher(t *testing.T) {
	if _, ok := assets.NewFetcher("https://example.com/images").(*assets.HTTPFetcher); !ok {
		t.Error("https base did not select HTTPFetcher")
	}
	if _, ok := assets.NewFetcher("./images").(*assets.DirFetcher); !ok {
		t.Error("directory base did not select DirFetcher")
	}
}
