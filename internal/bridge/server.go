// Package bridge exposes the tangible-device input path over a
// WebSocket endpoint. A device (or a phone acting as one) streams raw
// position frames as JSON; each accepted frame moves the device mass,
// advances the model, and echoes the resulting plank state back.
package bridge

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/san-kum/balancelab/internal/model"
	"github.com/san-kum/balancelab/internal/tangible"
)

// DeviceFrame is one raw position sample from the device, normalized
// to [0,1]. Garbage values are expected and handled downstream.
type DeviceFrame struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StateReply reports the plank after a frame was processed.
type StateReply struct {
	Tilt     float64 `json:"tilt"`
	Omega    float64 `json:"omega"`
	Balanced bool    `json:"balanced"`
	Accepted bool    `json:"accepted"`
}

// Server bridges WebSocket connections to a single shared balance
// model. The model itself is single-threaded; the mutex serializes all
// access so several connections cannot interleave steps.
type Server struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	model *model.BalanceModel
	ctrl  *tangible.Controller
	dt    float64
}

func NewServer(bm *model.BalanceModel, ctrl *tangible.Controller, dt float64) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		model: bm,
		ctrl:  ctrl,
		dt:    dt,
	}
}

// Handler upgrades the connection and pumps frames until the peer
// disconnects.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("bridge: upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		log.Printf("bridge: device connected from %s", r.RemoteAddr)
		defer log.Printf("bridge: device disconnected from %s", r.RemoteAddr)

		for {
			var frame DeviceFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("bridge: read error: %v", err)
				}
				return
			}

			reply := s.apply(frame)

			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("bridge: write error: %v", err)
				return
			}
		}
	}
}

// apply feeds one frame through the sanitizing controller and advances
// the model by one step under the lock.
func (s *Server) apply(frame DeviceFrame) StateReply {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := s.ctrl.SetPositionFromDevice(frame.X, frame.Y)
	s.model.Step(s.dt)

	plank := s.model.Plank
	return StateReply{
		Tilt:     plank.TiltAngle.Get(),
		Omega:    plank.AngularVelocity(),
		Balanced: plank.IsBalanced(),
		Accepted: accepted,
	}
}

// ListenAndServe blocks serving the bridge on addr at path /device.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/device", s.Handler())
	log.Printf("bridge: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
