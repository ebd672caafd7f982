package publicdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sinbum/korea-public-data-be-sub000/config"
)

func TestNewFromConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("serviceKey") != "cfg-key" {
			t.Errorf("expected configured service key, got %q", r.URL.Query().Get("serviceKey"))
		}
		_, _ = w.Write([]byte(`{"totalCount": 0, "data": []}`))
	}))
	defer srv.Close()

	c, err := NewFromConfig(&config.Config{
		BaseURL:    srv.URL,
		ServiceKey: "cfg-key",
		Timeout:    5 * time.Second,
		Retry: config.Retry{
			MaxAttempts: 2,
			BaseDelay:   time.Millisecond,
			Jitter:      false,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := c.Call(context.Background(), "getAnnouncementInformation01", nil)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Err)
	}
}
