package bridge

import (
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/san-kum/balancelab/internal/model"
	"github.com/san-kum/balancelab/internal/tangible"
)

func newTestServer() *Server {
	bm := model.New()
	bm.ColumnState.Set(model.NoColumns)
	ctrl := tangible.New(bm, 5.0)
	return NewServer(bm, ctrl, 0.01)
}

func TestServer_ApplyAcceptsValidFrame(t *testing.T) {
	s := newTestServer()

	reply := s.apply(DeviceFrame{X: 0.9, Y: 0.5})
	if !reply.Accepted {
		t.Error("valid frame not accepted")
	}
}

func TestServer_ApplyRejectsGarbage(t *testing.T) {
	s := newTestServer()

	reply := s.apply(DeviceFrame{X: math.NaN(), Y: 0.5})
	if reply.Accepted {
		t.Error("NaN frame accepted")
	}
	if math.IsNaN(reply.Tilt) {
		t.Error("garbage leaked into plank state")
	}
}

func TestServer_WebSocketRoundtrip(t *testing.T) {
	s := newTestServer()

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Park the device mass on the far right and step a few frames.
	var last StateReply
	for i := 0; i < 20; i++ {
		if err := conn.WriteJSON(DeviceFrame{X: 1.0, Y: 0.5}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if err := conn.ReadJSON(&last); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !last.Accepted {
			t.Fatalf("frame %d rejected", i)
		}
	}

	if last.Tilt <= 0 {
		t.Errorf("one-sided device mass should tilt the plank positive, got %f", last.Tilt)
	}
	if last.Balanced {
		t.Error("single off-center mass reported as balanced")
	}
}
