// Package stream serves rendered frames to websocket clients and exposes a
// small control/health surface. It is the headless presentation host: the
// engine writes frames into it through the render.Sink interface.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sweepdial/sweepdial/internal/raster"
)

// Controls are the host hooks a control message may fire. Name keys the
// adjustable value in control messages, replies and health ("rate" for the
// clock's tick rate, "bpm" for the metronome); Value reads it. Adjust
// applies a discrete step; Set clamps an absolute value. Both return the
// new value.
type Controls struct {
	Name   string
	Value  func() int
	Adjust func(up bool) int
	Set    func(v int) int
}

func (c Controls) key() string {
	if c.Name == "" {
		return "rate"
	}
	return c.Name
}

type Server struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	frameID uint64
	started time.Time
	size    raster.Dimensions
	rgb     []byte

	fps      func() int
	renderMS func() float64
	controls Controls
}

func NewServer(fps func() int, renderMS func() float64, controls Controls) *Server {
	return &Server{
		clients:  map[*websocket.Conn]bool{},
		started:  time.Now(),
		fps:      fps,
		renderMS: renderMS,
		controls: controls,
	}
}

// Routes registers the server's handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/frames", s.HandleFramesWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
}

// Present implements render.Sink: the packed words become a tightly packed
// RGB payload broadcast to every connected client. The frame buffer is
// copied before Present returns.
func (s *Server) Present(buf []uint32, size raster.Dimensions) error {
	s.mu.Lock()
	if len(s.rgb) != len(buf)*3 {
		s.rgb = make([]byte, len(buf)*3)
	}
	for i, px := range buf {
		s.rgb[i*3+0] = raster.R(px)
		s.rgb[i*3+1] = raster.G(px)
		s.rgb[i*3+2] = raster.B(px)
	}
	s.size = size
	s.frameID++
	payload := append([]byte{}, s.rgb...)
	id := s.frameID
	s.mu.Unlock()

	s.broadcastFrame(id, size, payload)
	return nil
}

func (s *Server) broadcastFrame(id uint64, size raster.Dimensions, rgb []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		W       int    `json:"w"`
		H       int    `json:"h"`
		RGB     []byte `json:"rgb"`
	}
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, W: size.Width, H: size.Height, RGB: rgb})
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if key, applied, ok := s.applyControl(msg); ok {
			b, _ := json.Marshal(map[string]any{key: applied})
			_ = conn.WriteMessage(websocket.TextMessage, b)
		}
	}
}

// applyControl fires the matching hook and reports the key and value to echo
// back. The absolute form is addressed by the control's own name, so a clock
// takes {"rate": n} and a metronome {"bpm": n}.
func (s *Server) applyControl(msg map[string]any) (string, int, bool) {
	key := s.controls.key()
	if v, ok := msg["adjust"].(float64); ok && s.controls.Adjust != nil {
		return key, s.controls.Adjust(v > 0), true
	}
	if v, ok := msg[key].(float64); ok && s.controls.Set != nil {
		return key, s.controls.Set(int(v)), true
	}
	return key, 0, false
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	// The host hooks take the host's lock; call them before taking s.mu so
	// the two locks are never held together here while Present acquires
	// them in the opposite order.
	resp := map[string]any{}
	if s.fps != nil {
		resp["fps"] = s.fps()
	}
	if s.controls.Value != nil {
		resp[s.controls.key()] = s.controls.Value()
	}
	if s.renderMS != nil {
		resp["render_ms"] = s.renderMS()
	}

	s.mu.RLock()
	resp["frame_id"] = s.frameID
	resp["uptime_s"] = time.Since(s.started).Seconds()
	resp["width"] = s.size.Width
	resp["height"] = s.size.Height
	s.mu.RUnlock()

	_ = json.NewEncoder(w).Encode(resp)
}
