package tcia_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/lescientifik/tcia-dl/pkg/infra/tcia"
)

const testSeriesUID = "1.3.6.1.4.1.14519.5.2.1.3098.5025.242083141114562987765795908595"

func TestClient_DownloadSeries_Success(t *testing.T) {
	archive := []byte("PK\x03\x04fake zip content")

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("metadata", `{"Result":{"Type":["ZIP"]}}`)
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	client := tcia.New(
		tcia.WithEndpoint(server.URL),
		tcia.WithAPIKey("secret-key"),
	)

	var buf bytes.Buffer
	meta, err := client.DownloadSeries(context.Background(), testSeriesUID, &buf)
	gt.NoError(t, err)
	gt.Value(t, meta).NotNil()
	gt.Value(t, meta.IsZip()).Equal(true)
	gt.Value(t, buf.Bytes()).Equal(archive)

	gt.Array(t, gotQuery["SeriesInstanceUID"]).Equal([]string{testSeriesUID})
	gt.Array(t, gotQuery["api_key"]).Equal([]string{"secret-key"})
}

func TestClient_DownloadSeries_NonZipPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("metadata", `{"Result":{"Type":["TEXT"]}}`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("this is not a zip"))
	}))
	defer server.Close()

	client := tcia.New(tcia.WithEndpoint(server.URL))

	var buf bytes.Buffer
	meta, err := client.DownloadSeries(context.Background(), "not-a-valid-uid", &buf)
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, tcia.ErrInvalidSeries)).Equal(true)
	gt.Value(t, meta).Nil()

	// nothing must reach the destination for a rejected series
	gt.Number(t, buf.Len()).Equal(0)
}

func TestClient_DownloadSeries_MissingMetadataHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	client := tcia.New(tcia.WithEndpoint(server.URL))

	var buf bytes.Buffer
	_, err := client.DownloadSeries(context.Background(), testSeriesUID, &buf)
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, tcia.ErrInvalidSeries)).Equal(true)
	gt.Number(t, buf.Len()).Equal(0)
}

func TestClient_DownloadSeries_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := tcia.New(tcia.WithEndpoint(server.URL))

	var buf bytes.Buffer
	_, err := client.DownloadSeries(context.Background(), testSeriesUID, &buf)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("unexpected status code")
	gt.Number(t, buf.Len()).Equal(0)
}

func TestClient_DownloadSeries_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("metadata", `{"Result":{"Type":["ZIP"]}}`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := tcia.New(tcia.WithEndpoint(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := client.DownloadSeries(ctx, testSeriesUID, &buf)
	gt.Error(t, err)
}
