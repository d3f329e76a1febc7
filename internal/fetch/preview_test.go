package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>IIT Bombay | Home</title>
	<meta name="description" content="Indian Institute of Technology Bombay official website.">
	<script>trackVisit();</script>
</head>
<body>
	<nav><a href="/admissions">Admissions</a></nav>
	<h1>Indian Institute of   Technology Bombay</h1>
	<h2>Admissions 2026</h2>
	<h2>Departments</h2>
	<p>Established in 1958.</p>
	<footer>Copyright</footer>
</body>
</html>`

func TestExtractPreview(t *testing.T) {
	preview, err := ExtractPreview("https://www.iitb.ac.in", samplePage)
	require.NoError(t, err)

	assert.Equal(t, "IIT Bombay | Home", preview.Title)
	assert.Equal(t, "Indian Institute of Technology Bombay official website.", preview.Description)
	assert.Equal(t, []string{
		"Indian Institute of Technology Bombay",
		"Admissions 2026",
		"Departments",
	}, preview.Headings)
}

func TestExtractPreview_OpenGraphWins(t *testing.T) {
	html := `<html><head>
		<title>plain title</title>
		<meta property="og:title" content="OG Title">
		<meta name="description" content="plain description">
		<meta property="og:description" content="OG description">
	</head><body></body></html>`

	preview, err := ExtractPreview("https://example.edu", html)
	require.NoError(t, err)
	assert.Equal(t, "OG Title", preview.Title)
	assert.Equal(t, "OG description", preview.Description)
}

func TestExtractPreview_ParagraphFallback(t *testing.T) {
	html := `<html><body><p> </p><p>First real paragraph.</p></body></html>`

	preview, err := ExtractPreview("https://example.edu", html)
	require.NoError(t, err)
	assert.Equal(t, "First real paragraph.", preview.Description)
}

func TestExtractPreview_HeadingCap(t *testing.T) {
	var html string
	for i := 0; i < 10; i++ {
		html += fmt.Sprintf("<h2>Section %d</h2>", i)
	}

	preview, err := ExtractPreview("https://example.edu", "<html><body>"+html+"</body></html>")
	require.NoError(t, err)
	assert.Len(t, preview.Headings, maxHeadings)
}

func TestURL_Errors(t *testing.T) {
	t.Run("invalid URL", func(t *testing.T) {
		_, err := URL(context.Background(), "not-a-url", nil)
		var fe *Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "not-a-url", fe.URL)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		result, err := URL(context.Background(), srv.URL, nil)
		require.Error(t, err)
		require.NotNil(t, result)
		assert.Equal(t, http.StatusNotFound, result.StatusCode)
	})
}

func TestPreviewer_CachesWithinTTL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	p := NewPreviewer(&PreviewerConfig{TTL: time.Hour})

	first, err := p.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	second, err := p.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	p.Invalidate(srv.URL)
	_, err = p.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestPreviewer_DoesNotCacheFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewPreviewer(nil)

	_, err := p.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	_, err = p.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
