package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-erp-auth/internal/app"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/models"
)

// Responses are compressed by chi's middleware.Compress. Requests need the
// reverse: some clients gzip their JSON bodies.

var gzipReaders sync.Pool

// withGZipRequest inflates request bodies sent with Content-Encoding gzip.
// A body that is not valid gzip is answered with 400 before any handler
// runs.
func withGZipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody || !isGzipEncoded(r.Header.Get("Content-Encoding")) {
			next.ServeHTTP(w, r)
			return
		}

		body, err := newGzipBody(r.Body)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Str("func", "withGZipRequest").Msg("request body is not gzip")
			writeResult(w, r, "withGZipRequest", models.Result{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
			return
		}

		r.Body = body
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}

func isGzipEncoded(header string) bool {
	for coding := range strings.SplitSeq(header, ",") {
		switch strings.ToLower(strings.TrimSpace(coding)) {
		case "gzip", "x-gzip":
			return true
		}
	}
	return false
}

// gzipBody reads through a pooled gzip.Reader. Close hands the reader back
// to the pool and closes the original body; only the first call does work.
type gzipBody struct {
	zr   *gzip.Reader
	src  io.ReadCloser
	once sync.Once
}

func newGzipBody(src io.ReadCloser) (*gzipBody, error) {
	zr, _ := gzipReaders.Get().(*gzip.Reader)
	if zr == nil {
		var err error
		if zr, err = gzip.NewReader(src); err != nil {
			return nil, err
		}
	} else if err := zr.Reset(src); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}
	return &gzipBody{zr: zr, src: src}, nil
}

func (b *gzipBody) Read(p []byte) (int, error) {
	if b.zr == nil {
		return 0, http.ErrBodyReadAfterClose
	}
	return b.zr.Read(p)
}

func (b *gzipBody) Close() error {
	var err error
	b.once.Do(func() {
		zr := b.zr
		b.zr = nil
		_ = zr.Close()
		gzipReaders.Put(zr)
		err = b.src.Close()
	})
	return err
}
