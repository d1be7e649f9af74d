package stats

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/developmentseed/osm-teams/pkg/config"
	"github.com/developmentseed/osm-teams/pkg/test"
	"github.com/matryer/is"
)

func TestStatsServerMetrics(t *testing.T) {
	is := is.New(t)

	cfg := config.DefaultConfig()
	addr := fmt.Sprintf("localhost:%d", test.RandomPort())
	cfg.Stats.ListenAddr = addr
	ctx := config.WithContext(context.TODO(), cfg)

	s, err := NewStatsServer(ctx)
	is.NoErr(err)
	go s.ListenAndServe() //nolint:errcheck
	t.Cleanup(func() {
		is.NoErr(s.Close())
	})

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/metrics")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	is.NoErr(err)
	defer resp.Body.Close() //nolint:errcheck
	is.Equal(resp.StatusCode, http.StatusOK)
}
